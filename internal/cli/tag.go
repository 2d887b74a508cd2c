package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/output"
	"github.com/nhle/problem-catalog/internal/store"
)

func newTagCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage the tag catalog",
	}

	cmd.AddCommand(
		newTagAddCmd(opts),
		newTagRmCmd(opts),
		newTagLsCmd(opts),
		newTagFindCmd(opts),
	)
	return cmd
}

func newTagAddCmd(opts *rootOptions) *cobra.Command {
	var fixed bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		Long: `Add a tag to the catalog. Names are not unique: adding an existing
name creates a second tag. Fixed tags cannot be deleted by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := store.NewTagStore(s).AddTag(cmd.Context(), args[0], !fixed)
			if err != nil {
				return err
			}
			opts.printer.Success("%s tag is added (id %d)", args[0], id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fixed, "fixed", false, "protect the tag from deletion by name")
	return cmd
}

func newTagRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete every removable tag with this name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := store.NewTagStore(s).DeleteTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no removable tag named %q: %w", args[0], store.ErrNotFound)
			}
			opts.printer.Success("%s tag is deleted", args[0])
			return nil
		},
	}
}

func newTagLsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tags, err := store.NewTagStore(s).ListTags(cmd.Context())
			if err != nil {
				return err
			}
			return renderTags(opts.printer, tags)
		},
	}
}

func newTagFindCmd(opts *rootOptions) *cobra.Command {
	var prefix bool

	cmd := &cobra.Command{
		Use:   "find <text>",
		Short: "Search tag names",
		Long: `Search tag names, ignoring ASCII case. By default the text may appear
anywhere in the name; --prefix anchors it at the start. Without the flag
search.mode from the config decides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			mode := opts.cfg.Search.MatchMode()
			if prefix {
				mode = model.MatchPrefix
			}

			tags, err := store.NewTagStore(s).SearchTags(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				opts.printer.Warning("no tag matches %q", args[0])
				return nil
			}
			return renderTags(opts.printer, tags)
		},
	}

	cmd.Flags().BoolVar(&prefix, "prefix", false, "match names starting with the text")
	return cmd
}

func renderTags(p *output.Printer, tags []model.Tag) error {
	if len(tags) == 0 {
		p.Info("No tags yet.")
		return nil
	}

	t := output.NewTable(p.Out(), []string{"id", "name", "removable"})
	for _, tag := range tags {
		t.AddRow(strconv.FormatInt(tag.ID, 10), tag.Name, p.RemovableBadge(tag.Removable))
	}
	return t.Render()
}

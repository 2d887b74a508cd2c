package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/output"
	"github.com/nhle/problem-catalog/internal/store"
)

func newProblemCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Manage problems and their tags",
	}

	cmd.AddCommand(
		newProblemAddCmd(opts),
		newProblemEditCmd(opts),
		newProblemLsCmd(opts),
		newProblemRmCmd(opts),
		newProblemTagsCmd(opts),
		newProblemAttachCmd(opts),
		newProblemDetachCmd(opts),
	)
	return cmd
}

func newProblemAddCmd(opts *rootOptions) *cobra.Command {
	var p model.Problem

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := store.NewProblemStore(s).CreateProblem(cmd.Context(), p)
			if err != nil {
				return err
			}
			opts.printer.Success("problem #%d is added", id)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Title, "title", "", "problem title (required)")
	f.IntVar(&p.Difficulty, "difficulty", 0, "difficulty rating")
	f.IntVar(&p.TimeTaken, "time-taken", 0, "minutes spent")
	f.StringVar(&p.ProblemURL, "problem-url", "", "link to the statement")
	f.StringVar(&p.SolutionURL, "solution-url", "", "link to a solution")
	f.StringVar(&p.FilePath, "file-path", "", "local solution file")
	f.IntVar(&p.NoOfAttempts, "attempts", 0, "number of attempts")
	f.StringVar(&p.Description, "description", "", "notes")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newProblemEditCmd(opts *rootOptions) *cobra.Command {
	var in model.Problem

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the fields of a problem",
		Long: `Change the fields of a problem. Only the flags given are written;
the other fields and the tag links are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			problems := store.NewProblemStore(s)
			p, err := problems.GetProblem(cmd.Context(), id)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("title") {
				p.Title = in.Title
			}
			if f.Changed("difficulty") {
				p.Difficulty = in.Difficulty
			}
			if f.Changed("time-taken") {
				p.TimeTaken = in.TimeTaken
			}
			if f.Changed("problem-url") {
				p.ProblemURL = in.ProblemURL
			}
			if f.Changed("solution-url") {
				p.SolutionURL = in.SolutionURL
			}
			if f.Changed("file-path") {
				p.FilePath = in.FilePath
			}
			if f.Changed("attempts") {
				p.NoOfAttempts = in.NoOfAttempts
			}
			if f.Changed("description") {
				p.Description = in.Description
			}

			if err := problems.UpdateProblem(cmd.Context(), *p); err != nil {
				return err
			}
			opts.printer.Success("problem #%d is updated", id)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "problem title")
	f.IntVar(&in.Difficulty, "difficulty", 0, "difficulty rating")
	f.IntVar(&in.TimeTaken, "time-taken", 0, "minutes spent")
	f.StringVar(&in.ProblemURL, "problem-url", "", "link to the statement")
	f.StringVar(&in.SolutionURL, "solution-url", "", "link to a solution")
	f.StringVar(&in.FilePath, "file-path", "", "local solution file")
	f.IntVar(&in.NoOfAttempts, "attempts", 0, "number of attempts")
	f.StringVar(&in.Description, "description", "", "notes")

	return cmd
}

func newProblemLsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List problems with their tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			problems, err := store.NewProblemStore(s).ListProblems(ctx)
			if err != nil {
				return err
			}
			if len(problems) == 0 {
				opts.printer.Info("No problems yet.")
				return nil
			}

			assoc := store.NewAssociationStore(s)
			t := output.NewTable(opts.printer.Out(), []string{"id", "title", "difficulty", "attempts", "tags"})
			for _, p := range problems {
				tags, err := assoc.ListTagsOf(ctx, p.ID)
				if err != nil {
					return err
				}
				t.AddRow(
					strconv.FormatInt(p.ID, 10),
					p.Title,
					strconv.Itoa(p.Difficulty),
					strconv.Itoa(p.NoOfAttempts),
					joinTagNames(tags),
				)
			}
			return t.Render()
		},
	}
}

func newProblemRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a problem and its tag links",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := store.NewProblemStore(s).DeleteProblem(cmd.Context(), id); err != nil {
				return err
			}
			opts.printer.Success("problem #%d is deleted", id)
			return nil
		},
	}
}

func newProblemTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <id>",
		Short: "Show the tags attached to a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := opts.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if _, err := store.NewProblemStore(s).GetProblem(ctx, id); err != nil {
				return err
			}
			tags, err := store.NewAssociationStore(s).ListTagsOf(ctx, id)
			if err != nil {
				return err
			}
			return renderTags(opts.printer, tags)
		},
	}
}

func newProblemAttachCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <id> <tag-name>",
		Short: "Attach a tag to a problem",
		Long: `Attach the tag with this exact name to a problem. When several tags
share the name the oldest is used. Attaching twice is a no-op.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.linkTag(cmd, args, true)
		},
	}
}

func newProblemDetachCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detach <id> <tag-name>",
		Short: "Detach a tag from a problem",
		Long: `Detach the tags with this exact name from a problem. Every attached
tag sharing the name is detached, whichever row it is.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.linkTag(cmd, args, false)
		},
	}
}

// linkTag resolves the problem id and tag name in args and attaches or
// detaches the pair.
func (o *rootOptions) linkTag(cmd *cobra.Command, args []string, attach bool) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	s, err := o.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if _, err := store.NewProblemStore(s).GetProblem(ctx, id); err != nil {
		return err
	}

	assoc := store.NewAssociationStore(s)
	if !attach {
		return o.detachByName(ctx, assoc, id, name)
	}

	tagID, ok, err := store.NewTagStore(s).FindTagIDByName(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no tag named %q: %w", name, store.ErrNotFound)
	}

	added, err := assoc.Attach(ctx, id, tagID)
	if err != nil {
		return err
	}
	if !added {
		o.printer.Info("%s is already attached to problem #%d", name, id)
		return nil
	}
	o.printer.Success("%s is attached to problem #%d", name, id)
	return nil
}

// detachByName removes every tag attached to the problem under name.
// Names are not unique, so the attached rows decide which ids go.
func (o *rootOptions) detachByName(ctx context.Context, assoc *store.AssociationStore, id int64, name string) error {
	attached, err := assoc.ListTagsOf(ctx, id)
	if err != nil {
		return err
	}

	var removed int
	for _, t := range attached {
		if t.Name != name {
			continue
		}
		ok, err := assoc.Detach(ctx, id, t.ID)
		if err != nil {
			return err
		}
		if ok {
			removed++
		}
	}

	if removed == 0 {
		o.printer.Info("%s was not attached to problem #%d", name, id)
		return nil
	}
	o.printer.Success("%s is detached from problem #%d", name, id)
	return nil
}

func joinTagNames(tags []model.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

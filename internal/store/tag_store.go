package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nhle/problem-catalog/internal/model"
)

// tagColumns is the ordered list of columns selected in tag queries.
const tagColumns = `id, name, removable`

// likeEscaper escapes LIKE wildcards so user text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TagStore is the tag catalog. Names are not unique: lookups by name
// take the oldest row and deletes by name remove every removable match.
type TagStore struct {
	gw Gateway
}

// NewTagStore returns a tag catalog backed by gw.
func NewTagStore(gw Gateway) *TagStore {
	return &TagStore{gw: gw}
}

// AddTag inserts a new tag and returns its id. No uniqueness check is
// made, so adding an existing name creates a second row.
func (s *TagStore) AddTag(ctx context.Context, name string, removable bool) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("tag name must not be empty: %w", ErrInvalid)
	}

	res, err := s.gw.Exec(ctx,
		"INSERT INTO tag (name, removable) VALUES (?, ?)",
		name, boolToInt(removable),
	)
	if err != nil {
		return 0, fmt.Errorf("adding tag %q: %w", name, err)
	}
	return res.LastInsertID, nil
}

// DeleteTag removes every removable tag named name and returns how many
// rows went. Unknown names are a no-op. CASCADE on problem_tag removes
// the associations.
func (s *TagStore) DeleteTag(ctx context.Context, name string) (int64, error) {
	res, err := s.gw.Exec(ctx,
		"DELETE FROM tag WHERE name = ? AND removable = 1", name)
	if err != nil {
		return 0, fmt.Errorf("deleting tag %q: %w", name, err)
	}
	return res.RowsAffected, nil
}

// FindTagIDByName resolves an exact name to the oldest matching id.
// A missing name is reported with ok == false and a nil error.
func (s *TagStore) FindTagIDByName(ctx context.Context, name string) (id int64, ok bool, err error) {
	err = s.gw.Get(ctx, &id,
		"SELECT id FROM tag WHERE name = ? ORDER BY id LIMIT 1", name)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("finding tag %q: %w", name, err)
	}
	return id, true, nil
}

// ListAllTagNames returns each distinct name once, in order of first use.
func (s *TagStore) ListAllTagNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.gw.Select(ctx, &names,
		"SELECT name FROM tag GROUP BY name ORDER BY MIN(id)")
	if err != nil {
		return nil, fmt.Errorf("listing tag names: %w", err)
	}
	return names, nil
}

// ListTags returns every tag row ordered by id.
func (s *TagStore) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.gw.Select(ctx, &tags,
		`SELECT `+tagColumns+` FROM tag ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// SearchTags returns tags whose name matches text under mode, in id order.
// Matching is case-insensitive for ASCII letters. Empty text matches nothing.
func (s *TagStore) SearchTags(ctx context.Context, text string, mode model.MatchMode) ([]model.Tag, error) {
	if text == "" {
		return nil, nil
	}

	var tags []model.Tag
	err := s.gw.Select(ctx, &tags,
		`SELECT `+tagColumns+` FROM tag WHERE name LIKE ? ESCAPE '\' ORDER BY id`,
		likePattern(text, mode))
	if err != nil {
		return nil, fmt.Errorf("searching tags for %q: %w", text, err)
	}
	return tags, nil
}

// likePattern builds the LIKE operand for text. Unknown modes fall back
// to contains.
func likePattern(text string, mode model.MatchMode) string {
	escaped := likeEscaper.Replace(text)
	if mode == model.MatchPrefix {
		return escaped + "%"
	}
	return "%" + escaped + "%"
}

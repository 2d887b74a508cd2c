package store

import (
	"context"
	"fmt"

	"github.com/nhle/problem-catalog/internal/model"
)

// AssociationStore owns the problem_tag relation. Each (problem, tag)
// pair appears at most once.
type AssociationStore struct {
	gw Gateway
}

// NewAssociationStore returns an association store backed by gw.
func NewAssociationStore(gw Gateway) *AssociationStore {
	return &AssociationStore{gw: gw}
}

// Attach links tagID to problemID. Attaching an existing pair is a no-op
// and reports added == false. Unknown ids fail the foreign keys.
func (s *AssociationStore) Attach(ctx context.Context, problemID, tagID int64) (added bool, err error) {
	res, err := s.gw.Exec(ctx,
		"INSERT OR IGNORE INTO problem_tag (problem_id, tag_id) VALUES (?, ?)",
		problemID, tagID)
	if err != nil {
		return false, fmt.Errorf("attaching tag %d to problem %d: %w", tagID, problemID, err)
	}
	return res.RowsAffected == 1, nil
}

// Detach removes the link between problemID and tagID if present.
func (s *AssociationStore) Detach(ctx context.Context, problemID, tagID int64) (removed bool, err error) {
	res, err := s.gw.Exec(ctx,
		"DELETE FROM problem_tag WHERE problem_id = ? AND tag_id = ?",
		problemID, tagID)
	if err != nil {
		return false, fmt.Errorf("detaching tag %d from problem %d: %w", tagID, problemID, err)
	}
	return res.RowsAffected == 1, nil
}

// ListTagsOf returns the tags attached to problemID in attach order.
func (s *AssociationStore) ListTagsOf(ctx context.Context, problemID int64) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.gw.Select(ctx, &tags, `
		SELECT t.id, t.name, t.removable FROM problem_tag pt
		INNER JOIN tag t ON t.id = pt.tag_id
		WHERE pt.problem_id = ?
		ORDER BY pt.rowid`, problemID)
	if err != nil {
		return nil, fmt.Errorf("listing tags of problem %d: %w", problemID, err)
	}
	return tags, nil
}

// detachAll removes every link of problemID using q, which may be a
// transaction.
func detachAll(ctx context.Context, q Querier, problemID int64) error {
	if _, err := q.Exec(ctx,
		"DELETE FROM problem_tag WHERE problem_id = ?", problemID); err != nil {
		return fmt.Errorf("clearing tags of problem %d: %w", problemID, err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"

	"github.com/nhle/problem-catalog/internal/model"
)

// problemColumns is the ordered list of columns selected in problem queries.
const problemColumns = `id, title, difficulty, time_taken, problem_url,
	solution_url, file_path, no_of_attempts, description`

// ProblemStore is the problem catalog. The tag association only relies
// on problem ids; the other fields are carried for the problem form.
type ProblemStore struct {
	gw Gateway
}

// NewProblemStore returns a problem catalog backed by gw.
func NewProblemStore(gw Gateway) *ProblemStore {
	return &ProblemStore{gw: gw}
}

// CreateProblem validates and inserts p, returning the new id.
func (s *ProblemStore) CreateProblem(ctx context.Context, p model.Problem) (int64, error) {
	if err := validateProblem(p); err != nil {
		return 0, err
	}

	res, err := s.gw.Exec(ctx, `
		INSERT INTO problem (
			title, difficulty, time_taken, problem_url,
			solution_url, file_path, no_of_attempts, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Difficulty, p.TimeTaken, p.ProblemURL,
		p.SolutionURL, p.FilePath, p.NoOfAttempts, p.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("creating problem: %w", err)
	}
	return res.LastInsertID, nil
}

// GetProblem retrieves a single problem by id.
func (s *ProblemStore) GetProblem(ctx context.Context, id int64) (*model.Problem, error) {
	var p model.Problem
	err := s.gw.Get(ctx, &p,
		`SELECT `+problemColumns+` FROM problem WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("getting problem %d: %w", id, err)
	}
	return &p, nil
}

// ListProblems returns every problem ordered by id.
func (s *ProblemStore) ListProblems(ctx context.Context) ([]model.Problem, error) {
	var problems []model.Problem
	err := s.gw.Select(ctx, &problems,
		`SELECT `+problemColumns+` FROM problem ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying problems: %w", err)
	}
	return problems, nil
}

// UpdateProblem validates p and overwrites the stored row with id p.ID.
func (s *ProblemStore) UpdateProblem(ctx context.Context, p model.Problem) error {
	if err := validateProblem(p); err != nil {
		return err
	}

	res, err := s.gw.Exec(ctx, `
		UPDATE problem SET
			title = ?, difficulty = ?, time_taken = ?, problem_url = ?,
			solution_url = ?, file_path = ?, no_of_attempts = ?, description = ?
		WHERE id = ?`,
		p.Title, p.Difficulty, p.TimeTaken, p.ProblemURL,
		p.SolutionURL, p.FilePath, p.NoOfAttempts, p.Description,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating problem %d: %w", p.ID, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("problem %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

// DeleteProblem removes a problem and, in the same transaction, every
// tag link pointing at it.
func (s *ProblemStore) DeleteProblem(ctx context.Context, id int64) error {
	return s.gw.InTx(ctx, func(q Querier) error {
		if err := detachAll(ctx, q, id); err != nil {
			return err
		}
		res, err := q.Exec(ctx, "DELETE FROM problem WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting problem %d: %w", id, err)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("problem %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

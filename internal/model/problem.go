package model

// Problem is a recorded practice problem. Only its ID matters to the
// tag association; the remaining fields belong to the problem form.
type Problem struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title" validate:"required,max=200"`
	Difficulty   int    `json:"difficulty" db:"difficulty" validate:"min=0,max=5000"`
	TimeTaken    int    `json:"time_taken" db:"time_taken" validate:"min=0"`
	ProblemURL   string `json:"problem_url" db:"problem_url" validate:"omitempty,url"`
	SolutionURL  string `json:"solution_url" db:"solution_url" validate:"omitempty,url"`
	FilePath     string `json:"file_path" db:"file_path"`
	NoOfAttempts int    `json:"no_of_attempts" db:"no_of_attempts" validate:"min=0"`
	Description  string `json:"description" db:"description"`
}

package tagsync

import "github.com/nhle/problem-catalog/internal/search"

// Event is an input to Controller.Dispatch.
type Event interface {
	event()
}

// ProblemSelected binds the controller to a problem.
type ProblemSelected struct {
	ID int64
}

// ProblemDeselected clears the binding.
type ProblemDeselected struct{}

// ProblemRowRemoved reports that problem ID left the problem list. The
// new scope is read back from the ProblemSource.
type ProblemRowRemoved struct {
	ID int64
}

// SearchTextChanged carries the full search box contents after a keystroke.
type SearchTextChanged struct {
	Text string
}

// SearchResultReady delivers a result published by the search engine.
type SearchResultReady struct {
	Result search.Result
}

// CursorMoved moves the candidate highlight by Delta.
type CursorMoved struct {
	Delta int
}

// SearchDismissed closes the candidate list and drops any pending query.
type SearchDismissed struct{}

// ScopeNone is the scope of an action taken while the problem list had
// no selection. It never matches a bound problem.
const ScopeNone int64 = -1

// TagAccepted attaches the highlighted candidate, or the tag named by the
// search text when no list is open. Scope is the problem the user was
// looking at; zero means the current one.
type TagAccepted struct {
	Scope int64
}

// TagChosen attaches an already resolved tag.
type TagChosen struct {
	Scope int64
	TagID int64
}

// TagCreateRequested adds a removable tag named Text. It does not attach it.
type TagCreateRequested struct {
	Text string
}

// TagDeleteRequested deletes every removable tag named Text.
type TagDeleteRequested struct {
	Text string
}

// TagDetachRequested removes TagID from the problem in Scope.
type TagDetachRequested struct {
	Scope int64
	TagID int64
}

// StatusExpired clears the status with the given ID if it is still shown.
type StatusExpired struct {
	ID uint64
}

// CatalogChanged reports that tags were added or removed outside the
// controller, e.g. in the tag catalog view.
type CatalogChanged struct{}

func (ProblemSelected) event()    {}
func (ProblemDeselected) event()  {}
func (ProblemRowRemoved) event()  {}
func (SearchTextChanged) event()  {}
func (SearchResultReady) event()  {}
func (CursorMoved) event()        {}
func (SearchDismissed) event()    {}
func (TagAccepted) event()        {}
func (TagChosen) event()          {}
func (TagCreateRequested) event() {}
func (TagDeleteRequested) event() {}
func (TagDetachRequested) event() {}
func (StatusExpired) event()      {}
func (CatalogChanged) event()     {}

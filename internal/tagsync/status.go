package tagsync

import "time"

// StatusKind classifies a status message for rendering.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusHint
	StatusError
)

// String returns a lowercase label for k.
func (k StatusKind) String() string {
	switch k {
	case StatusInfo:
		return "info"
	case StatusHint:
		return "hint"
	case StatusError:
		return "error"
	default:
		return "none"
	}
}

// Status is a transient message. The UI clears it after Timeout by
// dispatching StatusExpired with the same ID.
type Status struct {
	ID      uint64
	Text    string
	Kind    StatusKind
	Timeout time.Duration
}

// Empty reports whether no status is set.
func (s Status) Empty() bool {
	return s.Kind == StatusNone
}

// Status texts.
const (
	StartupHint     = "Press enter to add the highlighted tag to the selected problem"
	selectFirstText = "Select a problem first"
)

const (
	DefaultStatusTimeout = 2 * time.Second
	DefaultHintTimeout   = 5 * time.Second
)

package model

// MatchMode selects how tag search text is matched against tag names.
type MatchMode string

// Match modes understood by the tag search.
const (
	MatchContains MatchMode = "contains"
	MatchPrefix   MatchMode = "prefix"
)

// Valid reports whether m is a known match mode.
func (m MatchMode) Valid() bool {
	return m == MatchContains || m == MatchPrefix
}

// Tag is a short reusable label attachable to problems.
// Names are matched verbatim and are not unique.
type Tag struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Removable bool   `json:"removable" db:"removable"`
}

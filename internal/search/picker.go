package search

import "github.com/nhle/problem-catalog/internal/model"

// Picker holds the candidate list shown under the search box and the
// highlighted entry. The zero value is a closed picker.
type Picker struct {
	items  []model.Tag
	cursor int
	open   bool
}

// Show opens the picker on items with the first entry highlighted.
// An empty list closes it.
func (p *Picker) Show(items []model.Tag) {
	p.items = append(p.items[:0], items...)
	p.cursor = 0
	p.open = len(p.items) > 0
}

// Move shifts the highlight by delta, wrapping at both ends.
func (p *Picker) Move(delta int) {
	n := len(p.items)
	if !p.open || n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Next highlights the following candidate.
func (p *Picker) Next() { p.Move(1) }

// Prev highlights the preceding candidate.
func (p *Picker) Prev() { p.Move(-1) }

// Current returns the highlighted candidate.
func (p *Picker) Current() (model.Tag, bool) {
	if !p.open || p.cursor >= len(p.items) {
		return model.Tag{}, false
	}
	return p.items[p.cursor], true
}

// Close hides the picker and forgets its candidates.
func (p *Picker) Close() {
	p.items = p.items[:0]
	p.cursor = 0
	p.open = false
}

// Open reports whether the picker is showing candidates.
func (p *Picker) Open() bool { return p.open }

// Cursor returns the highlighted index.
func (p *Picker) Cursor() int { return p.cursor }

// Candidates returns a copy of the shown candidates.
func (p *Picker) Candidates() []model.Tag {
	if len(p.items) == 0 {
		return nil
	}
	out := make([]model.Tag, len(p.items))
	copy(out, p.items)
	return out
}

package tagsync

import (
	"context"
	"errors"
	"sync"

	"github.com/nhle/problem-catalog/internal/model"
)

var errBoom = errors.New("database is locked")

// memCatalog is an in-memory TagCatalog and Associations pair.
type memCatalog struct {
	tags   []model.Tag
	links  map[int64][]int64
	nextID int64

	// failures keyed by method name.
	fail map[string]error
}

func newMemCatalog(names ...string) *memCatalog {
	m := &memCatalog{links: make(map[int64][]int64), fail: make(map[string]error)}
	for _, n := range names {
		_, _ = m.AddTag(context.Background(), n, true)
	}
	return m
}

func (m *memCatalog) AddTag(_ context.Context, name string, removable bool) (int64, error) {
	if err := m.fail["AddTag"]; err != nil {
		return 0, err
	}
	m.nextID++
	m.tags = append(m.tags, model.Tag{ID: m.nextID, Name: name, Removable: removable})
	return m.nextID, nil
}

func (m *memCatalog) DeleteTag(_ context.Context, name string) (int64, error) {
	if err := m.fail["DeleteTag"]; err != nil {
		return 0, err
	}
	var n int64
	kept := m.tags[:0]
	for _, t := range m.tags {
		if t.Name == name && t.Removable {
			n++
			for p, ids := range m.links {
				m.links[p] = without(ids, t.ID)
			}
			continue
		}
		kept = append(kept, t)
	}
	m.tags = kept
	return n, nil
}

func (m *memCatalog) FindTagIDByName(_ context.Context, name string) (int64, bool, error) {
	if err := m.fail["FindTagIDByName"]; err != nil {
		return 0, false, err
	}
	for _, t := range m.tags {
		if t.Name == name {
			return t.ID, true, nil
		}
	}
	return 0, false, nil
}

func (m *memCatalog) ListAllTagNames(context.Context) ([]string, error) {
	if err := m.fail["ListAllTagNames"]; err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, t := range m.tags {
		if !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	return names, nil
}

func (m *memCatalog) Attach(_ context.Context, problemID, tagID int64) (bool, error) {
	if err := m.fail["Attach"]; err != nil {
		return false, err
	}
	for _, id := range m.links[problemID] {
		if id == tagID {
			return false, nil
		}
	}
	m.links[problemID] = append(m.links[problemID], tagID)
	return true, nil
}

func (m *memCatalog) Detach(_ context.Context, problemID, tagID int64) (bool, error) {
	if err := m.fail["Detach"]; err != nil {
		return false, err
	}
	before := len(m.links[problemID])
	m.links[problemID] = without(m.links[problemID], tagID)
	return len(m.links[problemID]) < before, nil
}

func (m *memCatalog) ListTagsOf(_ context.Context, problemID int64) ([]model.Tag, error) {
	if err := m.fail["ListTagsOf"]; err != nil {
		return nil, err
	}
	var out []model.Tag
	for _, id := range m.links[problemID] {
		for _, t := range m.tags {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *memCatalog) tagID(name string) int64 {
	id, _, _ := m.FindTagIDByName(context.Background(), name)
	return id
}

func without(ids []int64, drop int64) []int64 {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// fakeSearcher records the engine calls without any timers.
type fakeSearcher struct {
	mu      sync.Mutex
	seq     uint64
	texts   []string
	cancels int
}

func (f *fakeSearcher) TextChanged(text string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.texts = append(f.texts, text)
	return f.seq
}

func (f *fakeSearcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.cancels++
}

func (f *fakeSearcher) Latest() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// selection is a mutable ProblemSource.
type selection struct {
	id int64
	ok bool
}

func (s *selection) CurrentProblemID() (int64, bool) { return s.id, s.ok }

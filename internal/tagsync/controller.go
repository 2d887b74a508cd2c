// Package tagsync keeps the tag panel in step with the selected problem.
//
// The Controller owns the binding between the problem list selection and
// the tags shown for it, the candidate list produced by the search engine,
// and the transient status line. All input arrives as typed events through
// Dispatch, which serializes them.
package tagsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/search"
)

var (
	// ErrNoScope is returned for tag actions while no problem is selected.
	ErrNoScope = errors.New("no problem selected")

	// ErrStaleScope is returned for an action aimed at a problem that is
	// no longer selected. The action is dropped.
	ErrStaleScope = errors.New("action targets a previous selection")
)

// State is the binding state of the controller.
type State int

const (
	StateIdle State = iota
	StateBound
)

// String returns the state name.
func (s State) String() string {
	if s == StateBound {
		return "bound"
	}
	return "idle"
}

// TagCatalog is the subset of store.TagStore the controller uses.
type TagCatalog interface {
	AddTag(ctx context.Context, name string, removable bool) (int64, error)
	DeleteTag(ctx context.Context, name string) (int64, error)
	FindTagIDByName(ctx context.Context, name string) (int64, bool, error)
	ListAllTagNames(ctx context.Context) ([]string, error)
}

// Associations is the subset of store.AssociationStore the controller uses.
type Associations interface {
	Attach(ctx context.Context, problemID, tagID int64) (bool, error)
	Detach(ctx context.Context, problemID, tagID int64) (bool, error)
	ListTagsOf(ctx context.Context, problemID int64) ([]model.Tag, error)
}

// ProblemSource reports the problem currently selected in the problem list.
type ProblemSource interface {
	CurrentProblemID() (int64, bool)
}

// ProblemSourceFunc adapts a function to ProblemSource.
type ProblemSourceFunc func() (int64, bool)

// CurrentProblemID calls f.
func (f ProblemSourceFunc) CurrentProblemID() (int64, bool) { return f() }

// Searcher is the debounced search engine. search.Engine satisfies it.
type Searcher interface {
	TextChanged(text string) uint64
	Cancel()
	Latest() uint64
}

// Options configures a Controller.
type Options struct {
	StatusTimeout time.Duration
	HintTimeout   time.Duration
	Logger        *slog.Logger
}

// Snapshot is a copy of the controller's observable state.
type Snapshot struct {
	State      State
	ProblemID  int64
	Tags       []model.Tag
	Candidates []model.Tag
	Cursor     int
	PickerOpen bool
	SearchText string
	Hint       string
	KnownNames []string
	Status     Status
}

// Controller is the selection sync state machine.
type Controller struct {
	tags     TagCatalog
	assoc    Associations
	problems ProblemSource
	searcher Searcher
	opts     Options
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	problemID int64
	shown     []model.Tag
	picker    search.Picker
	text      string
	hint      string
	known     []string
	status    Status
	statusSeq uint64
}

// New creates an idle controller.
func New(tags TagCatalog, assoc Associations, problems ProblemSource, searcher Searcher, opts Options) *Controller {
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = DefaultStatusTimeout
	}
	if opts.HintTimeout <= 0 {
		opts.HintTimeout = DefaultHintTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		tags:     tags,
		assoc:    assoc,
		problems: problems,
		searcher: searcher,
		opts:     opts,
		logger:   logger.With("component", "tagsync"),
	}
}

// Load reads the known tag names and shows the startup hint.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshKnownLocked(ctx); err != nil {
		return err
	}
	c.setStatusLocked(StartupHint, StatusHint, c.opts.HintTimeout)
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:      c.state,
		ProblemID:  c.problemID,
		Tags:       append([]model.Tag(nil), c.shown...),
		Candidates: c.picker.Candidates(),
		Cursor:     c.picker.Cursor(),
		PickerOpen: c.picker.Open(),
		SearchText: c.text,
		Hint:       c.hint,
		KnownNames: append([]string(nil), c.known...),
		Status:     c.status,
	}
}

// Dispatch applies ev. Errors are also reflected in the status line, so
// callers driving a UI may ignore them.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := ev.(type) {
	case ProblemSelected:
		return c.selectLocked(ctx, ev.ID)
	case ProblemDeselected:
		c.unbindLocked()
		return nil
	case ProblemRowRemoved:
		return c.rowRemovedLocked(ctx, ev.ID)
	case SearchTextChanged:
		c.textChangedLocked(ev.Text)
		return nil
	case SearchResultReady:
		return c.resultLocked(ev.Result)
	case CursorMoved:
		c.picker.Move(ev.Delta)
		return nil
	case SearchDismissed:
		c.searcher.Cancel()
		c.picker.Close()
		c.hint = ""
		return nil
	case TagAccepted:
		return c.acceptLocked(ctx, ev.Scope)
	case TagChosen:
		if err := c.checkScopeLocked(ev.Scope); err != nil {
			return err
		}
		c.searcher.Cancel()
		c.picker.Close()
		c.hint = ""
		return c.attachLocked(ctx, ev.TagID, "")
	case TagCreateRequested:
		return c.createLocked(ctx, ev.Text)
	case TagDeleteRequested:
		return c.deleteLocked(ctx, ev.Text)
	case TagDetachRequested:
		return c.detachLocked(ctx, ev.Scope, ev.TagID)
	case CatalogChanged:
		return c.catalogChangedLocked(ctx)
	case StatusExpired:
		if c.status.ID == ev.ID {
			c.status = Status{}
		}
		return nil
	default:
		return fmt.Errorf("unknown event %T", ev)
	}
}

func (c *Controller) selectLocked(ctx context.Context, id int64) error {
	tags, err := c.assoc.ListTagsOf(ctx, id)
	if err != nil {
		c.failLocked("Could not load tags", err)
		return err
	}

	c.state = StateBound
	c.problemID = id
	c.shown = tags
	c.logger.Debug("bound to problem", "problem_id", id, "tags", len(tags))
	return nil
}

func (c *Controller) unbindLocked() {
	c.state = StateIdle
	c.problemID = 0
	c.shown = nil
}

func (c *Controller) rowRemovedLocked(ctx context.Context, removed int64) error {
	id, ok := c.problems.CurrentProblemID()
	if !ok {
		c.unbindLocked()
		return nil
	}

	if err := c.selectLocked(ctx, id); err != nil {
		if c.state == StateBound && c.problemID == removed {
			c.unbindLocked()
		}
		return err
	}
	return nil
}

func (c *Controller) textChangedLocked(text string) {
	c.text = text
	c.hint = ""
	if text == "" {
		c.picker.Close()
	}
	c.searcher.TextChanged(text)
}

func (c *Controller) resultLocked(r search.Result) error {
	if latest := c.searcher.Latest(); r.Seq != latest {
		c.logger.Debug("dropping stale search result", "seq", r.Seq, "latest", latest)
		return nil
	}

	if r.Err != nil {
		c.picker.Close()
		c.failLocked("Search failed", r.Err)
		return r.Err
	}

	c.picker.Show(r.Candidates)
	c.hint = r.Hint
	return nil
}

// checkScopeLocked validates a scope carried by a user action.
func (c *Controller) checkScopeLocked(scope int64) error {
	if c.state != StateBound {
		c.setStatusLocked(selectFirstText, StatusInfo, c.opts.StatusTimeout)
		return ErrNoScope
	}
	if scope != 0 && scope != c.problemID {
		c.logger.Debug("dropping action for previous selection",
			"scope", scope, "problem_id", c.problemID)
		return fmt.Errorf("problem %d: %w", scope, ErrStaleScope)
	}
	return nil
}

func (c *Controller) acceptLocked(ctx context.Context, scope int64) error {
	if err := c.checkScopeLocked(scope); err != nil {
		return err
	}
	c.searcher.Cancel()

	var (
		tagID int64
		name  string
	)
	if cur, ok := c.picker.Current(); ok {
		tagID, name = cur.ID, cur.Name
	} else {
		if c.text == "" {
			return nil
		}
		id, found, err := c.tags.FindTagIDByName(ctx, c.text)
		if err != nil {
			c.failLocked("Could not look up tag", err)
			return err
		}
		if !found {
			return nil
		}
		tagID, name = id, c.text
	}

	c.picker.Close()
	c.hint = ""
	c.text = name
	return c.attachLocked(ctx, tagID, name)
}

// attachLocked links tagID to the bound problem and re-reads its tags.
func (c *Controller) attachLocked(ctx context.Context, tagID int64, name string) error {
	added, err := c.assoc.Attach(ctx, c.problemID, tagID)
	if err != nil {
		c.failLocked("Could not attach tag", err)
		return err
	}
	c.logger.Debug("attached tag",
		"problem_id", c.problemID, "tag_id", tagID, "name", name, "added", added)

	return c.relistLocked(ctx)
}

func (c *Controller) detachLocked(ctx context.Context, scope, tagID int64) error {
	if err := c.checkScopeLocked(scope); err != nil {
		return err
	}

	if _, err := c.assoc.Detach(ctx, c.problemID, tagID); err != nil {
		c.failLocked("Could not detach tag", err)
		return err
	}
	return c.relistLocked(ctx)
}

func (c *Controller) relistLocked(ctx context.Context) error {
	tags, err := c.assoc.ListTagsOf(ctx, c.problemID)
	if err != nil {
		c.failLocked("Could not load tags", err)
		return err
	}
	c.shown = tags
	return nil
}

func (c *Controller) createLocked(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		c.setStatusLocked("Type a tag name first", StatusInfo, c.opts.StatusTimeout)
		return nil
	}

	if _, err := c.tags.AddTag(ctx, name, true); err != nil {
		c.failLocked("Could not add tag", err)
		return err
	}
	c.logger.Info("tag added", "name", name)
	c.setStatusLocked(name+" tag is added", StatusInfo, c.opts.StatusTimeout)

	c.hint = ""
	c.searcher.TextChanged(c.text)
	return c.refreshKnownLocked(ctx)
}

func (c *Controller) deleteLocked(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		c.setStatusLocked("Type a tag name first", StatusInfo, c.opts.StatusTimeout)
		return nil
	}

	n, err := c.tags.DeleteTag(ctx, name)
	if err != nil {
		c.failLocked("Could not delete tag", err)
		return err
	}
	if n == 0 {
		c.setStatusLocked("no removable tag named "+name, StatusInfo, c.opts.StatusTimeout)
		return nil
	}
	c.logger.Info("tag deleted", "name", name, "rows", n)
	c.setStatusLocked(name+" tag is deleted", StatusInfo, c.opts.StatusTimeout)

	c.picker.Close()
	c.searcher.TextChanged(c.text)
	if err := c.refreshKnownLocked(ctx); err != nil {
		return err
	}
	// Links to the deleted tags went with them.
	if c.state == StateBound {
		return c.relistLocked(ctx)
	}
	return nil
}

func (c *Controller) catalogChangedLocked(ctx context.Context) error {
	if c.text != "" {
		c.searcher.TextChanged(c.text)
	}
	if err := c.refreshKnownLocked(ctx); err != nil {
		return err
	}
	if c.state == StateBound {
		return c.relistLocked(ctx)
	}
	return nil
}

func (c *Controller) refreshKnownLocked(ctx context.Context) error {
	names, err := c.tags.ListAllTagNames(ctx)
	if err != nil {
		c.failLocked("Could not load tag names", err)
		return err
	}
	c.known = names
	return nil
}

func (c *Controller) failLocked(what string, err error) {
	c.logger.Warn(strings.ToLower(what), "problem_id", c.problemID, "error", err)
	c.setStatusLocked(fmt.Sprintf("%s: %v", what, err), StatusError, c.opts.StatusTimeout)
}

func (c *Controller) setStatusLocked(text string, kind StatusKind, timeout time.Duration) {
	c.statusSeq++
	c.status = Status{ID: c.statusSeq, Text: text, Kind: kind, Timeout: timeout}
}

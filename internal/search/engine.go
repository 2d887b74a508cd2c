// Package search runs debounced tag-name queries while the user types.
//
// Every keystroke restarts a single timer. When typing pauses for the
// configured interval one query runs with the latest text and its result
// is published on a channel. Each call to TextChanged starts a new
// generation; results from older generations are never published.
package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nhle/problem-catalog/internal/model"
)

const (
	// DefaultInterval is the typing pause that triggers a query.
	DefaultInterval = 500 * time.Millisecond

	// DefaultQueryTimeout bounds a single query.
	DefaultQueryTimeout = 2 * time.Second
)

// NoMatchHint is attached to a result whose non-empty text matched nothing.
const NoMatchHint = "No matching tag. Press ctrl+a to add it as a new tag."

// Querier runs one tag search. store.TagStore satisfies it.
type Querier interface {
	SearchTags(ctx context.Context, text string, mode model.MatchMode) ([]model.Tag, error)
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Interval     time.Duration
	Mode         model.MatchMode
	QueryTimeout time.Duration
	Logger       *slog.Logger
}

// Result is one published search outcome.
type Result struct {
	// Seq is the generation that produced the result.
	Seq        uint64
	Text       string
	Candidates []model.Tag
	// Hint is set when Text is non-empty and nothing matched.
	Hint string
	Err  error
}

// Engine debounces search text and publishes query results.
type Engine struct {
	querier Querier
	opts    Options
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	seq     uint64
	text    string
	timer   *time.Timer
	closed  bool
	results chan Result
}

// NewEngine creates an engine querying q.
func NewEngine(q Querier, opts Options) *Engine {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	if !opts.Mode.Valid() {
		opts.Mode = model.MatchContains
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		querier: q,
		opts:    opts,
		logger:  logger.With("component", "search"),
		ctx:     ctx,
		cancel:  cancel,
		// Capacity 1: a reader only ever cares about the newest result.
		results: make(chan Result, 1),
	}
}

// Mode returns the match mode the engine queries with.
func (e *Engine) Mode() model.MatchMode {
	return e.opts.Mode
}

// Results returns the channel results are published on. It is closed
// by Close.
func (e *Engine) Results() <-chan Result {
	return e.results
}

// Latest returns the current generation.
func (e *Engine) Latest() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}

// TextChanged records new search text and restarts the debounce timer.
// Empty text publishes an empty result at once without querying.
// It returns the generation the text belongs to.
func (e *Engine) TextChanged(text string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.seq
	}

	e.seq++
	e.text = text
	e.stopTimerLocked()

	if text == "" {
		e.publishLocked(Result{Seq: e.seq})
		return e.seq
	}

	seq := e.seq
	e.timer = time.AfterFunc(e.opts.Interval, func() {
		e.fire(seq)
	})
	return seq
}

// Cancel drops the pending query, if any, and invalidates a query that
// is already running.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTimerLocked()
	e.seq++
}

// Close stops the engine and closes the results channel. Further calls
// to TextChanged are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.stopTimerLocked()
	e.cancel()
	close(e.results)
}

// fire runs the query for generation seq once the timer expires.
func (e *Engine) fire(seq uint64) {
	e.mu.Lock()
	if e.closed || seq != e.seq {
		e.mu.Unlock()
		return
	}
	text := e.text
	e.timer = nil
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(e.ctx, e.opts.QueryTimeout)
	defer cancel()

	start := time.Now()
	tags, err := e.querier.SearchTags(ctx, text, e.opts.Mode)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || seq != e.seq {
		e.logger.Debug("dropping superseded search result", "seq", seq, "latest", e.seq)
		return
	}

	res := Result{Seq: seq, Text: text, Candidates: tags, Err: err}
	if err != nil {
		e.logger.Warn("tag search failed", "text", text, "error", err)
	} else {
		if len(tags) == 0 {
			res.Hint = NoMatchHint
		}
		e.logger.Debug("tag search done",
			"text", text, "matches", len(tags), "duration", time.Since(start))
	}
	e.publishLocked(res)
}

// publishLocked replaces any unread result with r. Callers hold e.mu.
func (e *Engine) publishLocked(r Result) {
	select {
	case e.results <- r:
		return
	default:
	}

	// Full: discard the stale result and retry.
	select {
	case <-e.results:
	default:
	}
	select {
	case e.results <- r:
	default:
	}
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// Package search implements the people search workflow. Students search
// professors and everyone else searches students; the direction is fixed
// when the workflow is created.
package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/propuestas-project/propctl/internal/api"
	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/session"
)

// MsgSearchFailed is shown when a failure carries no message of its own
const MsgSearchFailed = "Ocurrió un error al realizar la búsqueda. Por favor, intenta de nuevo."

// Status is the phase of the workflow
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the workflow. Results is set only in
// StatusSuccess, Message and Err only in StatusError.
type State struct {
	Status  Status
	Query   string
	Results []domain.SearchResult
	Message string
	Err     error
	// Seq is the submit that produced this state, 0 for Idle
	Seq uint64
}

// Option configures a Workflow
type Option func(*Workflow)

// WithContactHandler sets what Contact does after logging the intent
func WithContactHandler(fn ContactFunc) Option {
	return func(w *Workflow) {
		w.contact = fn
	}
}

// Workflow drives one search screen. Submit may be called concurrently;
// only the completion of the latest submit is applied.
type Workflow struct {
	searcher Searcher
	logger   *slog.Logger
	target   domain.ResultKind
	contact  ContactFunc

	seq atomic.Uint64

	mu        sync.RWMutex
	state     State
	observers []func(State)

	// pending holds applied states not yet delivered; the goroutine that
	// finds draining false delivers them in order with no lock held
	pending  []State
	draining bool
}

// New creates a workflow. The search direction comes from the role stored
// in store and does not change afterwards.
func New(searcher Searcher, store session.Store, logger *slog.Logger, opts ...Option) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Workflow{
		searcher: searcher,
		logger:   logger,
		target:   TargetFor(session.Role(store)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// TargetFor returns which kind of user a role searches for
func TargetFor(role domain.Role) domain.ResultKind {
	if role == domain.RoleStudent {
		return domain.KindProfessor
	}
	return domain.KindStudent
}

// Target returns the kind of result this workflow searches for
func (w *Workflow) Target() domain.ResultKind {
	return w.target
}

// State returns the current snapshot
func (w *Workflow) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// OnChange registers fn to receive every applied state. Observers are
// called in apply order and may call Submit or OnChange themselves; states
// produced that way are delivered after the observer returns.
func (w *Workflow) OnChange(fn func(State)) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, fn)
}

// Submit runs a search for query and blocks until it completes. The
// returned state is this submit's outcome; it was applied only if no newer
// submit started in the meantime.
func (w *Workflow) Submit(ctx context.Context, query string) State {
	seq := w.seq.Add(1)
	w.apply(State{Status: StatusLoading, Query: query, Seq: seq})

	results, err := w.run(ctx, query)

	var next State
	if err != nil {
		w.logger.Error("search failed",
			"target", string(w.target),
			"query", query,
			"seq", seq,
			"error", err)
		next = State{Status: StatusError, Query: query, Message: errorMessage(err), Err: err, Seq: seq}
	} else {
		if results == nil {
			results = []domain.SearchResult{}
		}
		next = State{Status: StatusSuccess, Query: query, Results: results, Seq: seq}
	}

	if !w.apply(next) {
		w.logger.Debug("discarding stale search result",
			"query", query,
			"seq", seq,
			"latest", w.seq.Load())
	}
	return next
}

func (w *Workflow) run(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if w.target == domain.KindProfessor {
		return w.searcher.SearchProfessors(ctx, query)
	}
	return w.searcher.SearchStudents(ctx, query)
}

// apply installs s if it belongs to the latest submit and queues it for
// the observers
func (w *Workflow) apply(s State) bool {
	w.mu.Lock()
	if s.Seq != w.seq.Load() {
		w.mu.Unlock()
		return false
	}
	w.state = s
	w.pending = append(w.pending, s)
	if w.draining {
		w.mu.Unlock()
		return true
	}
	w.draining = true
	w.mu.Unlock()

	w.drain()
	return true
}

func (w *Workflow) drain() {
	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.draining = false
			w.mu.Unlock()
			return
		}
		next := w.pending[0]
		w.pending = w.pending[1:]
		observers := append(([]func(State))(nil), w.observers...)
		w.mu.Unlock()

		for _, fn := range observers {
			fn(next)
		}
	}
}

// Contact logs the intent to contact result and runs the contact handler
// if one is set.
func (w *Workflow) Contact(ctx context.Context, result domain.SearchResult) error {
	w.logger.Info("Contactando a "+result.FullName(),
		"user_id", result.ID(),
		"kind", string(result.Kind))

	if w.contact == nil {
		return nil
	}
	return w.contact(ctx, result)
}

func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if msg := apiErr.UserMessage(); msg != "" {
			return msg
		}
	}
	return MsgSearchFailed
}

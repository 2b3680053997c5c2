package autobind

import (
	"fmt"
	"sync"

	"github.com/toyz/autobind/internal/errors"
)

// DefaultMaxAttempts bounds how many busy ticks an owner waits for
const DefaultMaxAttempts = 100

// State is the scheduler state of one owner id
type State int

const (
	StateIdle State = iota
	StateQueued
	StateAwaitingReadiness
	StateResolved
	StateTimedOut
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateQueued:
		return "Queued"
	case StateAwaitingReadiness:
		return "AwaitingReadiness"
	case StateResolved:
		return "Resolved"
	case StateTimedOut:
		return "TimedOut"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IdentityService maps owners to ids that stay valid across a restart
type IdentityService interface {
	IDOf(owner *Owner) string
	ResolveID(id string) *Owner
}

// Readiness reports whether the host is rebuilding
type Readiness interface {
	IsBusy() bool
}

// Deferrer runs a callback on a later tick
type Deferrer interface {
	RunLater(fn func())
}

// OwnerBinder is the part of Binder the scheduler drives
type OwnerBinder interface {
	BindOne(owner *Owner) bool
}

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithMaxAttempts overrides DefaultMaxAttempts
func WithMaxAttempts(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithLogger sets the scheduler logger
func WithLogger(logger Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type tracked struct {
	state      State
	attempts   int
	generation int
}

// Scheduler re-runs the binder for owners once the host is ready. Pending
// owners are persisted by id so the work survives a host restart.
//
// Per id: Idle -> Queued -> AwaitingReadiness -> Resolved | TimedOut.
type Scheduler struct {
	binder   OwnerBinder
	ids      IdentityService
	pending  *PendingSet
	ready    Readiness
	deferrer Deferrer
	logger   Logger

	maxAttempts int

	mu      sync.Mutex
	tracked map[string]*tracked
}

// NewScheduler wires a scheduler to its collaborators
func NewScheduler(binder OwnerBinder, ids IdentityService, store KeyValueStore, ready Readiness, deferrer Deferrer, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		binder:      binder,
		ids:         ids,
		pending:     NewPendingSet(store),
		ready:       ready,
		deferrer:    deferrer,
		logger:      NopLogger,
		maxAttempts: DefaultMaxAttempts,
		tracked:     make(map[string]*tracked),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxAttempts returns the busy tick budget per owner
func (s *Scheduler) MaxAttempts() int {
	return s.maxAttempts
}

// Pending exposes the persisted id list
func (s *Scheduler) Pending() *PendingSet {
	return s.pending
}

// State returns the state of id
func (s *Scheduler) State(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tracked[id]; ok {
		return t.state
	}
	return StateIdle
}

// Attempts returns how many busy ticks id has waited
func (s *Scheduler) Attempts(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tracked[id]; ok {
		return t.attempts
	}
	return 0
}

// Enqueue persists the owner id and arms a readiness check. Enqueuing an
// owner that is already pending leaves storage untouched but still arms a
// fresh check, which supersedes the previous one.
func (s *Scheduler) Enqueue(owner *Owner) error {
	return s.EnqueueAll([]*Owner{owner})
}

// EnqueueAll is Enqueue for a batch with a single write to storage
func (s *Scheduler) EnqueueAll(owners []*Owner) error {
	type queued struct {
		id    string
		owner *Owner
	}

	batch := make([]queued, 0, len(owners))
	ids := make([]string, 0, len(owners))
	for _, owner := range owners {
		if owner == nil {
			continue
		}
		id := s.ids.IDOf(owner)
		if id == "" {
			return errors.Newf(errors.BindingFailureCode, "owner '%s' has no stable id", owner.ClassName())
		}
		batch = append(batch, queued{id: id, owner: owner})
		ids = append(ids, id)
	}

	if _, err := s.pending.Add(ids...); err != nil {
		return errors.Wrap(errors.FileSystemErrorCode, "failed to persist pending bind ids", err)
	}

	for _, q := range batch {
		s.arm(q.id, q.owner, StateQueued)
	}
	return nil
}

// ProcessPending resumes the owners persisted by a previous process. The
// stored list is cleared before anything else happens; ids that no longer
// resolve are dropped. It returns the number of owners resumed.
func (s *Scheduler) ProcessPending() (int, error) {
	ids, err := s.pending.Take()
	if err != nil {
		return 0, errors.Wrap(errors.FileSystemErrorCode, "failed to clear pending bind ids", err)
	}

	resumed := 0
	for _, id := range ids {
		owner := s.ids.ResolveID(id)
		if owner == nil {
			s.logger.Debug("dropping pending bind '%s': owner no longer exists", id)
			continue
		}
		s.arm(id, owner, StateAwaitingReadiness)
		resumed++
	}
	return resumed, nil
}

func (s *Scheduler) arm(id string, owner *Owner, state State) {
	s.mu.Lock()
	t, ok := s.tracked[id]
	if !ok {
		t = &tracked{}
		s.tracked[id] = t
	}
	t.generation++
	t.state = state
	t.attempts = 0
	generation := t.generation
	s.mu.Unlock()

	s.deferrer.RunLater(func() { s.poll(id, owner, generation, 0) })
}

func (s *Scheduler) current(id string, generation int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tracked[id]
	return ok && t.generation == generation
}

func (s *Scheduler) transition(id string, generation int, state State, attempts int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tracked[id]
	if !ok || t.generation != generation {
		return false
	}
	t.state = state
	t.attempts = attempts
	return true
}

func (s *Scheduler) poll(id string, owner *Owner, generation, attempt int) {
	if !s.current(id, generation) {
		return
	}

	if s.ready.IsBusy() {
		if attempt < s.maxAttempts {
			if s.transition(id, generation, StateAwaitingReadiness, attempt+1) {
				s.deferrer.RunLater(func() { s.poll(id, owner, generation, attempt+1) })
			}
			return
		}

		if s.transition(id, generation, StateTimedOut, attempt) {
			s.logger.Warn("%v", errors.NewReadinessTimeout(owner.ClassName(), attempt))
			s.forget(id)
		}
		return
	}

	if !s.transition(id, generation, StateResolved, attempt) {
		return
	}
	if s.binder.BindOne(owner) {
		s.logger.Info("bound %s", owner.ClassName())
	} else {
		s.logger.Warn("binding %s finished with failures", owner.ClassName())
	}
	s.forget(id)
}

func (s *Scheduler) forget(id string) {
	if _, err := s.pending.Remove(id); err != nil {
		s.logger.Warn("failed to remove '%s' from pending bind ids: %v", id, err)
	}
}

package overseer

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type Option func(*Options)

type Options struct {
	Logger   zerolog.Logger
	Observer Observer
}

func defaultOptions() Options { return Options{Logger: zerolog.Nop()} }

func WithLogger(log zerolog.Logger) Option { return func(o *Options) { o.Logger = log } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Supervisor tracks a dynamic set of tasks and reports each completion to
// subscribers exactly once, in completion order. Construct one per
// composition root with New and share it by reference.
type Supervisor struct {
	mu       sync.Mutex
	reg      *registry
	bindings map[string]CancelFunc
	watching bool
	closed   bool
	idle     chan struct{}

	finished chan Task
	events   notifier

	log zerolog.Logger
	obs Observer
}

func New(optFns ...Option) *Supervisor {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Supervisor{
		reg:      newRegistry(),
		bindings: make(map[string]CancelFunc),
		finished: make(chan Task),
		log:      opts.Logger,
		obs:      opts.Observer,
	}
}

// Subscribe registers a completion handler. At least one handler must be
// subscribed before tasks are added.
func (s *Supervisor) Subscribe(h Handler) Subscription {
	return s.events.subscribe(h)
}

// Unsubscribe removes a previously registered handler.
func (s *Supervisor) Unsubscribe(sub Subscription) bool {
	return s.events.unsubscribe(sub)
}

// Add starts t if it has not been started and tracks it until completion.
// It returns ErrAlreadyTracked when a task with the same identity is still
// tracked, ErrNoSubscriber while no handler is subscribed, ErrClosed after
// Close, and propagates any error from the task's own start action. Add
// never blocks on the watcher.
func (s *Supervisor) Add(t Task) error {
	return s.add(t, nil)
}

// AddWithCancel is Add plus a cooperative cancellation trigger that Cancel
// may later invoke. A binding for the same identity is silently overwritten.
func (s *Supervisor) AddWithCancel(t Task, cancel CancelFunc) error {
	return s.add(t, cancel)
}

// AddAll applies the single-task Add contract to each element in order and
// stops at the first failure. An empty slice changes nothing.
func (s *Supervisor) AddAll(ts []Task) error {
	for i, t := range ts {
		if err := s.add(t, nil); err != nil {
			return errors.Wrapf(err, "add task %d of %d", i+1, len(ts))
		}
	}
	return nil
}

func (s *Supervisor) add(t Task, cancel CancelFunc) error {
	if t == nil {
		return errors.New("overseer: nil task")
	}
	if s.events.empty() {
		return ErrNoSubscriber
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.reg.contains(t.ID()) {
		s.mu.Unlock()
		return errors.Wrapf(ErrAlreadyTracked, "task %q", t.ID())
	}
	if t.Status() == StatusPending {
		if err := t.Start(); err != nil {
			s.mu.Unlock()
			return errors.Wrapf(err, "start task %q", t.ID())
		}
	}
	s.reg.add(t)
	if cancel != nil {
		s.bindings[t.ID()] = cancel
	}
	go s.forward(t)

	// The start decision and the watching flag must flip under the same
	// lock, or an Add racing the final drain could leave a task
	// unwatched or spawn a second loop.
	started := false
	if !s.watching {
		s.watching = true
		s.idle = make(chan struct{})
		started = true
		go s.watch(s.idle)
	}
	s.mu.Unlock()

	s.log.Debug().Str("task", t.ID()).Bool("cancelable", cancel != nil).Msg("task tracked")
	if s.obs != nil {
		s.obs.TaskTracked(t.ID())
		if started {
			s.obs.WatcherStarted()
		}
	}
	return nil
}

// forward delivers t to the watcher once it reaches a terminal status. One
// forwarder per tracked task makes the watcher's first-to-finish race span
// tasks added while the race is in progress.
func (s *Supervisor) forward(t Task) {
	<-t.Done()
	s.finished <- t
}

// watch is the completion loop: receive the next finisher, drop it from the
// registry, publish it, and exit once the registry drains. Handlers run on
// this goroutine, so a slow handler delays detection of later completions.
func (s *Supervisor) watch(idle chan struct{}) {
	for {
		t := <-s.finished

		s.mu.Lock()
		s.reg.remove(t.ID())
		delete(s.bindings, t.ID())
		s.mu.Unlock()

		status := t.Status()
		s.log.Debug().Str("task", t.ID()).Stringer("status", status).Msg("task finished")
		s.events.publish(t, s.log)
		if s.obs != nil {
			s.obs.TaskFinished(t.ID(), status)
		}

		s.mu.Lock()
		if s.reg.empty() {
			s.watching = false
			s.mu.Unlock()
			if s.obs != nil {
				s.obs.WatcherStopped()
			}
			close(idle)
			return
		}
		s.mu.Unlock()
	}
}

// WaitFor blocks until t reaches a terminal status and returns true. It
// returns false immediately when t is not currently tracked; a task that
// already finished and was removed is indistinguishable from one never
// added.
func (s *Supervisor) WaitFor(t Task) bool {
	if t == nil {
		return false
	}
	s.mu.Lock()
	ok := s.reg.contains(t.ID())
	s.mu.Unlock()
	if !ok {
		return false
	}
	<-t.Done()
	return true
}

// WaitForID is WaitFor over the first tracked task with the given identity.
func (s *Supervisor) WaitForID(id string) bool {
	s.mu.Lock()
	t, ok := s.reg.find(id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	<-t.Done()
	return true
}

// WaitAll blocks until every currently tracked task has finished and its
// notification has fired, then returns true. It returns false immediately
// when nothing is tracked at call time.
func (s *Supervisor) WaitAll() bool {
	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return false
	}
	idle := s.idle
	s.mu.Unlock()
	<-idle
	return true
}

// Cancel invokes the cancellation trigger bound to t. It returns false when
// t has no binding or already reached a terminal status, and true exactly
// once per bound task: the trigger fires once even under concurrent callers.
// Cancellation is cooperative; t is still reported through the normal
// completion path once it actually finishes.
func (s *Supervisor) Cancel(t Task) bool {
	if t == nil {
		return false
	}
	s.mu.Lock()
	cancel, ok := s.bindings[t.ID()]
	if !ok || t.Status().Terminal() {
		s.mu.Unlock()
		return false
	}
	delete(s.bindings, t.ID())
	s.mu.Unlock()

	s.log.Debug().Str("task", t.ID()).Msg("cancellation requested")
	if s.obs != nil {
		s.obs.CancelRequested(t.ID())
	}
	cancel()
	return true
}

// IsRunning reports whether the completion watcher is active, i.e. at least
// one task is tracked.
func (s *Supervisor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// Close stops accepting new tasks and requests cancellation of every live
// bound task, each trigger at most once. Already tracked tasks are still
// drained and reported by the watcher. Close is idempotent.
func (s *Supervisor) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	var pending []CancelFunc
	for id, cancel := range s.bindings {
		if t, ok := s.reg.find(id); ok && !t.Status().Terminal() {
			pending = append(pending, cancel)
		}
	}
	s.bindings = make(map[string]CancelFunc)
	s.mu.Unlock()

	for _, cancel := range pending {
		cancel()
	}
	s.log.Debug().Int("canceled", len(pending)).Msg("supervisor closed")
	return nil
}

package overseer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PanicError wraps a panic recovered from a task function.
type PanicError struct {
	TaskID string
	Value  any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("overseer: panic in task %s: %v", e.TaskID, e.Value)
}

// FuncTask adapts a plain function to the Task interface. Start launches the
// function on its own goroutine exactly once; the task reaches StatusCompleted
// when the function returns nil, StatusCanceled when it returns the context's
// cancellation error, and StatusFaulted on any other error or panic.
type FuncTask struct {
	id     string
	fn     func(ctx context.Context) error
	ctx    context.Context
	status atomic.Int32
	start  sync.Once
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// NewFunc builds a FuncTask over fn. An empty id is replaced with a random
// UUID.
func NewFunc(id string, fn func(ctx context.Context) error) *FuncTask {
	return newFunc(context.Background(), id, fn)
}

// NewCancelable builds a FuncTask whose context is canceled by the returned
// trigger, suitable for Supervisor.AddWithCancel.
func NewCancelable(id string, fn func(ctx context.Context) error) (*FuncTask, CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	return newFunc(ctx, id, fn), CancelFunc(cancel)
}

func newFunc(ctx context.Context, id string, fn func(ctx context.Context) error) *FuncTask {
	if id == "" {
		id = uuid.NewString()
	}
	return &FuncTask{
		id:   id,
		fn:   fn,
		ctx:  ctx,
		done: make(chan struct{}),
	}
}

func (t *FuncTask) ID() string { return t.id }

func (t *FuncTask) Status() Status { return Status(t.status.Load()) }

func (t *FuncTask) Done() <-chan struct{} { return t.done }

// Err returns the error the task function finished with, nil while the task
// has not reached a terminal status.
func (t *FuncTask) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *FuncTask) Start() error {
	if t.fn == nil {
		return errors.New("overseer: nil task func")
	}
	t.start.Do(func() {
		t.status.Store(int32(StatusRunning))
		go t.run()
	})
	return nil
}

func (t *FuncTask) run() {
	defer close(t.done)

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = PanicError{TaskID: t.id, Value: r}
			}
		}()
		err = t.fn(t.ctx)
	}()

	var final Status
	var panicked PanicError
	switch {
	case err == nil:
		final = StatusCompleted
	case errors.As(err, &panicked):
		final = StatusFaulted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		final = StatusCanceled
	default:
		final = StatusFaulted
	}

	t.mu.Lock()
	t.err = err
	t.mu.Unlock()
	t.status.Store(int32(final))
}

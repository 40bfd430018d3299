package overseer

// Status is the observable lifecycle state of a task.
type Status int32

const (
	StatusPending Status = iota
	StatusRunning
	StatusCompleted
	StatusFaulted
	StatusCanceled
)

// Terminal reports whether the task will not progress further.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFaulted, StatusCanceled:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFaulted:
		return "faulted"
	case StatusCanceled:
		return "canceled"
	}
	return "unknown"
}

// Task is the asynchronous unit of work the supervisor tracks. The caller
// owns the task; the supervisor holds a non-owning reference while it is
// tracked.
//
// Start must be idempotent: starting an already-running task is a no-op.
// Done must return a channel that is closed once, when the task reaches a
// terminal status.
type Task interface {
	ID() string
	Status() Status
	Start() error
	Done() <-chan struct{}
}

// CancelFunc requests cooperative cancellation of a task. It must be safe
// to invoke twice, though the supervisor invokes a bound trigger at most
// once.
type CancelFunc func()

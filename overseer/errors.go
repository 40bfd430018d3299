package overseer

import "github.com/pkg/errors"

var (
	// ErrAlreadyTracked is returned by Add when a task with the same
	// identity is still tracked.
	ErrAlreadyTracked = errors.New("overseer: task already tracked")

	// ErrNoSubscriber is returned by Add while no completion handler is
	// subscribed; completions would otherwise be silently dropped.
	ErrNoSubscriber = errors.New("overseer: no completion subscriber")

	// ErrClosed is returned by Add after Close.
	ErrClosed = errors.New("overseer: supervisor closed")
)

package overseer

// Observer receives supervisor lifecycle hooks. Implementations must be safe
// for concurrent use; hooks are invoked outside the supervisor's lock.
type Observer interface {
	TaskTracked(id string)
	TaskFinished(id string, status Status)
	CancelRequested(id string)
	WatcherStarted()
	WatcherStopped()
}

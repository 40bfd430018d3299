package overseer

// registry is the set of tracked tasks keyed by identity; each identity
// appears at most once, from a successful add until the watcher removes it on
// completion. It is not safe for concurrent use on its own; the Supervisor
// guards every access with its mutex.
type registry struct {
	byID map[string]Task
}

func newRegistry() *registry {
	return &registry{byID: make(map[string]Task)}
}

func (r *registry) add(t Task) {
	r.byID[t.ID()] = t
}

// remove drops the task with the given identity; absent identities are a
// no-op.
func (r *registry) remove(id string) {
	delete(r.byID, id)
}

func (r *registry) contains(id string) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *registry) find(id string) (Task, bool) {
	t, ok := r.byID[id]
	return t, ok
}

func (r *registry) empty() bool { return len(r.byID) == 0 }

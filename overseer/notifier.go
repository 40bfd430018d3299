package overseer

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler receives a task that reached a terminal status.
type Handler func(t Task)

// Subscription identifies a registered handler for Unsubscribe.
type Subscription uint64

type subscriber struct {
	id Subscription
	fn Handler
}

// notifier is the single multicast completion event. Publish invokes handlers
// in subscription order, synchronously on the publishing goroutine.
type notifier struct {
	mu   sync.Mutex
	next Subscription
	subs []subscriber
}

func (n *notifier) subscribe(h Handler) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	n.subs = append(n.subs, subscriber{id: n.next, fn: h})
	return n.next
}

func (n *notifier) unsubscribe(s Subscription) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, sub := range n.subs {
		if sub.id == s {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (n *notifier) empty() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs) == 0
}

// publish delivers t to every current subscriber. A panicking handler is
// recovered and logged so it cannot kill the watcher loop.
func (n *notifier) publish(t Task, log zerolog.Logger) {
	n.mu.Lock()
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, sub := range subs {
		invoke(sub.fn, t, log)
	}
}

func invoke(h Handler, t Task, log zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("task", t.ID()).Interface("panic", r).Msg("completion handler panicked")
		}
	}()
	h(t)
}

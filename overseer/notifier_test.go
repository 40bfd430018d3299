package overseer

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNotifierPublishOrder(t *testing.T) {
	t.Parallel()
	var n notifier
	var order []int
	n.subscribe(func(Task) { order = append(order, 1) })
	n.subscribe(func(Task) { order = append(order, 2) })
	n.subscribe(func(Task) { order = append(order, 3) })

	n.publish(newStub("x"), zerolog.Nop())
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("handlers ran out of subscription order: %v", order)
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	t.Parallel()
	var n notifier
	calls := 0
	sub := n.subscribe(func(Task) { calls++ })
	if !n.unsubscribe(sub) {
		t.Fatal("unsubscribe of a live subscription should succeed")
	}
	if n.unsubscribe(sub) {
		t.Fatal("second unsubscribe should report not found")
	}
	if !n.empty() {
		t.Fatal("notifier should be empty after unsubscribing")
	}
	n.publish(newStub("x"), zerolog.Nop())
	if calls != 0 {
		t.Fatalf("unsubscribed handler was invoked %d times", calls)
	}
}

func TestNotifierRecoversHandlerPanic(t *testing.T) {
	t.Parallel()
	var n notifier
	ran := false
	n.subscribe(func(Task) { panic("bad handler") })
	n.subscribe(func(Task) { ran = true })

	n.publish(newStub("x"), zerolog.Nop())
	if !ran {
		t.Fatal("a panicking handler must not stop later handlers")
	}
}

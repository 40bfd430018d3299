// Package prom exports supervisor lifecycle metrics through Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NetPo4ki/go-overseer/overseer"
)

// Observer implements overseer.Observer on top of Prometheus collectors.
type Observer struct {
	tracked  prometheus.Counter
	finished *prometheus.CounterVec
	cancels  prometheus.Counter
	watching prometheus.Gauge
}

// New registers the collectors with reg and returns the observer. It panics
// on duplicate registration, like promauto.
func New(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		tracked: factory.NewCounter(prometheus.CounterOpts{
			Name: "overseer_tasks_tracked_total",
			Help: "Tasks accepted by the supervisor.",
		}),
		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "overseer_tasks_finished_total",
			Help: "Tasks that reached a terminal status, by status.",
		}, []string{"status"}),
		cancels: factory.NewCounter(prometheus.CounterOpts{
			Name: "overseer_cancel_requests_total",
			Help: "Cancellation requests delivered to bound tasks.",
		}),
		watching: factory.NewGauge(prometheus.GaugeOpts{
			Name: "overseer_watcher_running",
			Help: "1 while the completion watcher is active.",
		}),
	}
}

func (o *Observer) TaskTracked(_ string) { o.tracked.Inc() }

func (o *Observer) TaskFinished(_ string, status overseer.Status) {
	o.finished.WithLabelValues(status.String()).Inc()
}

func (o *Observer) CancelRequested(_ string) { o.cancels.Inc() }

func (o *Observer) WatcherStarted() { o.watching.Set(1) }

func (o *Observer) WatcherStopped() { o.watching.Set(0) }

var _ overseer.Observer = (*Observer)(nil)

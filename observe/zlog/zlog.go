// Package zlog logs supervisor lifecycle events through zerolog.
package zlog

import (
	"github.com/rs/zerolog"

	"github.com/NetPo4ki/go-overseer/overseer"
)

// Observer implements overseer.Observer by emitting a structured event per
// lifecycle hook.
type Observer struct {
	log zerolog.Logger
}

// New returns an observer writing to log.
func New(log zerolog.Logger) *Observer { return &Observer{log: log} }

func (o *Observer) TaskTracked(id string) {
	o.log.Info().Str("task", id).Msg("task tracked")
}

func (o *Observer) TaskFinished(id string, status overseer.Status) {
	o.log.Info().Str("task", id).Stringer("status", status).Msg("task finished")
}

func (o *Observer) CancelRequested(id string) {
	o.log.Info().Str("task", id).Msg("cancellation requested")
}

func (o *Observer) WatcherStarted() {
	o.log.Debug().Msg("completion watcher started")
}

func (o *Observer) WatcherStopped() {
	o.log.Debug().Msg("completion watcher stopped")
}

var _ overseer.Observer = (*Observer)(nil)

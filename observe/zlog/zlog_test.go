package zlog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/NetPo4ki/go-overseer/overseer"
)

func TestObserverEmitsEvents(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obs := New(zerolog.New(&buf))

	obs.WatcherStarted()
	obs.TaskTracked("job-1")
	obs.CancelRequested("job-1")
	obs.TaskFinished("job-1", overseer.StatusCanceled)
	obs.WatcherStopped()

	out := buf.String()
	assert.Contains(t, out, "task tracked")
	assert.Contains(t, out, "cancellation requested")
	assert.Contains(t, out, `"status":"canceled"`)
	assert.Contains(t, out, `"task":"job-1"`)
}

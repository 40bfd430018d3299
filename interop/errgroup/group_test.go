package errgroup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGroupAllSucceed(t *testing.T) {
	t.Parallel()
	g, _ := WithContext(context.Background())
	var done atomic.Int32
	for i := 0; i < 3; i++ {
		g.Go(func() error {
			done.Add(1)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(3), done.Load())
}

func TestGroupFirstErrorWins(t *testing.T) {
	t.Parallel()
	g, _ := WithContext(context.Background())
	boom := errors.New("boom")
	g.Go(func() error {
		time.Sleep(10 * time.Millisecond)
		return boom
	})
	g.Go(func() error {
		time.Sleep(60 * time.Millisecond)
		return errors.New("later")
	})
	assert.ErrorIs(t, g.Wait(), boom)
}

func TestGroupCancelsContextOnFailure(t *testing.T) {
	t.Parallel()
	g, ctx := WithContext(context.Background())
	canceled := make(chan struct{})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			close(canceled)
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return errors.New("sibling was not canceled")
		}
	})
	g.Go(func() error {
		time.Sleep(10 * time.Millisecond)
		return errors.New("boom")
	})
	require.Error(t, g.Wait())
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("sibling did not observe cancellation")
	}
}

func TestGroupEmptyWait(t *testing.T) {
	t.Parallel()
	g, ctx := WithContext(context.Background())
	require.NoError(t, g.Wait())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

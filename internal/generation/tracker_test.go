package generation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_LatestWins(t *testing.T) {
	var tr Tracker

	ctx1, first := tr.Begin(context.Background())
	_, second := tr.Begin(context.Background())
	defer second.Done()

	require.ErrorIs(t, ctx1.Err(), context.Canceled, "older request must be cancelled")
	assert.False(t, first.Current())
	assert.True(t, second.Current())

	var got string
	assert.False(t, first.Publish(func() { got = "first" }))
	assert.True(t, second.Publish(func() { got = "second" }))
	assert.Equal(t, "second", got)
}

func TestTracker_SlowEarlierResponseDoesNotOverwrite(t *testing.T) {
	var (
		tr     Tracker
		mu     sync.Mutex
		result string
		wg     sync.WaitGroup
	)

	load := func(ctx context.Context, tk *Ticket, name string, wait <-chan struct{}) {
		defer wg.Done()
		defer tk.Done()

		select {
		case <-wait:
		case <-ctx.Done():
		}
		tk.Publish(func() {
			mu.Lock()
			result = name
			mu.Unlock()
		})
	}

	slowCtx, slow := tr.Begin(context.Background())
	fastCtx, fast := tr.Begin(context.Background())

	release := make(chan struct{})
	done := make(chan struct{})
	close(done)

	wg.Add(2)
	go load(fastCtx, fast, "fast", done)
	go load(slowCtx, slow, "slow", release)
	wg.Wait()
	close(release)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "fast", result)
}

func TestTracker_Cancel(t *testing.T) {
	var tr Tracker
	ctx, tk := tr.Begin(context.Background())

	tr.Cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, tk.Current())
	assert.False(t, tk.Publish(func() {}))

	tr.Cancel()
}

func TestTicket_DoneCancelsOwnContext(t *testing.T) {
	var tr Tracker
	ctx, tk := tr.Begin(context.Background())
	tk.Done()
	assert.Error(t, ctx.Err())
	assert.True(t, tk.Current(), "done does not change the generation")
}

func TestTracker_ParentCancellation(t *testing.T) {
	var tr Tracker
	parent, cancel := context.WithCancel(context.Background())
	ctx, tk := tr.Begin(parent)
	defer tk.Done()

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

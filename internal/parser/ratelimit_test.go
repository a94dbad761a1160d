package parser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("acquire until exhausted", func(t *testing.T) {
		rl := newRateLimiter(5)

		// Should succeed for first 5 attempts
		for i := 0; i < 5; i++ {
			success := rl.tryAcquire()
			assert.True(t, success, "Expected tryAcquire to succeed for attempt %d", i+1)
		}

		// 6th attempt should fail
		success := rl.tryAcquire()
		assert.False(t, success, "Expected tryAcquire to fail after tokens exhausted")
	})

	t.Run("refill over time", func(t *testing.T) {
		// 6000/minute refills 100 tokens per second, keeping the test fast.
		rl := newRateLimiter(6000)

		for i := 0; i < 6000; i++ {
			require.True(t, rl.tryAcquire())
		}
		require.False(t, rl.tryAcquire())

		time.Sleep(50 * time.Millisecond)

		assert.True(t, rl.tryAcquire(), "Expected tokens to refill with elapsed time")
	})

	t.Run("wait blocks until refill", func(t *testing.T) {
		rl := newRateLimiter(3000)
		ctx := context.Background()

		for i := 0; i < 3000; i++ {
			require.True(t, rl.tryAcquire())
		}

		start := time.Now()
		done := make(chan error)
		go func() {
			done <- rl.wait(ctx)
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
			// Allow some tolerance for timing
			assert.True(t, time.Since(start) >= 10*time.Millisecond, "Expected to wait for refill, but completed too quickly")
		case <-time.After(10 * time.Second):
			t.Fatal("Rate limiter wait timed out")
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl := newRateLimiter(1) // Only 1 request per minute

		// Use up the token
		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error)
		go func() {
			done <- rl.wait(ctx)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		err := <-done
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter canceled")
	})
}

func TestParseRateLimited(t *testing.T) {
	client := &mockClient{response: `{"amount": 5, "description": "x", "category": "Other", "transaction_type": "expense"}`}
	p := New(client, Config{RateLimit: 2}, nil)

	// The first two calls fit the configured budget.
	for i := 0; i < 2; i++ {
		_, err := p.Parse(context.Background(), "coffee 5")
		require.NoError(t, err)
	}
	assert.Len(t, client.prompts, 2)

	// With the bucket drained, a canceled caller surfaces a service failure
	// from the limiter without reaching the generation service.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Parse(ctx, "coffee 5")
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Len(t, client.prompts, 2, "exhausted limiter must gate the outbound call")
}

// blockingClient honors context cancellation and never replies otherwise.
type blockingClient struct{}

func (blockingClient) ParseTransaction(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestParseRequestTimeout(t *testing.T) {
	p := New(blockingClient{}, Config{RequestTimeout: 20 * time.Millisecond}, nil)

	start := time.Now()
	_, err := p.Parse(context.Background(), "coffee 5")
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second, "Expected the per-call timeout to cut the call short")
}

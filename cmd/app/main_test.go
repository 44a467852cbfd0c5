package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAwaitConsumer(t *testing.T) {
	t.Run("already drained channel is not awaited again", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// The channel never receives; only the alreadyDone flag saves us
		// from blocking until the deadline
		assert.True(t, awaitConsumer(ctx, make(chan error), true))
	})

	t.Run("loop exit arrives first", func(t *testing.T) {
		done := make(chan error, 1)
		done <- nil

		assert.True(t, awaitConsumer(context.Background(), done, false))
	})

	t.Run("deadline expires first", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.False(t, awaitConsumer(ctx, make(chan error), false))
	})
}

package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/helperbot/internal/cooldown"
)

func TestSweepInterval(t *testing.T) {
	c := qt.New(t)

	c.Assert(sweepInterval(0), qt.Equals, time.Second)
	c.Assert(sweepInterval(10*time.Millisecond), qt.Equals, time.Second)
	c.Assert(sweepInterval(5*time.Second), qt.Equals, 5*time.Second)
}

func TestCooldownSweepRunner(t *testing.T) {
	c := qt.New(t)

	store := cooldown.NewMemoryStore()
	gate := cooldown.New(store, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := gate.Check(context.Background(), "ping", "u1", time.Now())
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsTrue)
	c.Assert(store.Len(), qt.Equals, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		startCooldownSweepRunner(ctx, gate, 5*time.Millisecond)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for store.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Assert(store.Len(), qt.Equals, 0)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		c.Fatal("sweep runner did not stop after cancel")
	}
}

func TestCooldownSweepRunnerStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gate := cooldown.New(cooldown.NewMemoryStore(), time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Returns right away instead of waiting for the first tick
	startCooldownSweepRunner(ctx, gate, time.Hour)
}

package cooldown

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

var t0 = time.UnixMilli(1_700_000_000_000)

func newTestGate(window time.Duration) (*Gate, *MemoryStore) {
	store := NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, window, logger), store
}

func ms(v int64) time.Time {
	return t0.Add(time.Duration(v) * time.Millisecond)
}

func TestCheckScenario(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	gate, _ := newTestGate(5000 * time.Millisecond)

	res, err := gate.Check(ctx, "ping", "u1", ms(0))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsTrue)

	res, err = gate.Check(ctx, "ping", "u1", ms(2000))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsFalse)
	c.Assert(res.Seconds(), qt.Equals, "3.0")
	c.Assert(res.Message("ping"), qt.Equals, "Please wait 3.0 more seconds before using ping")

	res, err = gate.Check(ctx, "ping", "u1", ms(6000))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsTrue)
}

func TestCheckRemaining(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	tests := []struct {
		delta    int64
		expected string
	}{
		{delta: 1, expected: "5.0"},
		{delta: 250, expected: "4.8"},
		{delta: 1000, expected: "4.0"},
		{delta: 4321, expected: "0.7"},
		{delta: 3750, expected: "1.3"},
		{delta: 4750, expected: "0.3"},
		{delta: 2250, expected: "2.8"},
		{delta: 4999, expected: "0.0"},
	}

	for _, test := range tests {
		gate, _ := newTestGate(5 * time.Second)

		res, err := gate.Check(ctx, "help", "u1", ms(0))
		c.Assert(err, qt.IsNil)
		c.Assert(res.Allowed, qt.IsTrue)

		res, err = gate.Check(ctx, "help", "u1", ms(test.delta))
		c.Assert(err, qt.IsNil)
		c.Assert(res.Allowed, qt.IsFalse, qt.Commentf("delta %d", test.delta))
		c.Assert(res.Seconds(), qt.Equals, test.expected, qt.Commentf("delta %d", test.delta))
	}
}

func TestDenialKeepsTimestamp(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	gate, _ := newTestGate(5 * time.Second)

	_, err := gate.Check(ctx, "ping", "u1", ms(0))
	c.Assert(err, qt.IsNil)

	for _, at := range []int64{1000, 2000, 3000, 4000} {
		res, err := gate.Check(ctx, "ping", "u1", ms(at))
		c.Assert(err, qt.IsNil)
		c.Assert(res.Allowed, qt.IsFalse)
	}

	// Window is counted from the first accepted invocation, not the last attempt
	res, err := gate.Check(ctx, "ping", "u1", ms(5000))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsTrue)
}

func TestAllowedResetsReference(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	gate, _ := newTestGate(5 * time.Second)

	_, _ = gate.Check(ctx, "ping", "u1", ms(0))

	res, err := gate.Check(ctx, "ping", "u1", ms(7000))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsTrue)

	res, err = gate.Check(ctx, "ping", "u1", ms(9000))
	c.Assert(err, qt.IsNil)
	c.Assert(res.Allowed, qt.IsFalse)
	c.Assert(res.Seconds(), qt.Equals, "3.0")
}

func TestKeysAreIndependent(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	gate, _ := newTestGate(5 * time.Second)

	res, _ := gate.Check(ctx, "ping", "u1", ms(0))
	c.Assert(res.Allowed, qt.IsTrue)

	res, _ = gate.Check(ctx, "ping", "u2", ms(10))
	c.Assert(res.Allowed, qt.IsTrue)

	res, _ = gate.Check(ctx, "help", "u1", ms(20))
	c.Assert(res.Allowed, qt.IsTrue)

	res, _ = gate.Check(ctx, "ping", "u1", ms(30))
	c.Assert(res.Allowed, qt.IsFalse)
}

func TestMissingActor(t *testing.T) {
	c := qt.New(t)
	gate, store := newTestGate(5 * time.Second)

	_, err := gate.Check(context.Background(), "ping", "", ms(0))
	c.Assert(errors.Is(err, ErrMissingActor), qt.IsTrue)
	c.Assert(store.Len(), qt.Equals, 0)
}

func TestZeroWindow(t *testing.T) {
	c := qt.New(t)
	gate, store := newTestGate(0)

	for i := 0; i < 3; i++ {
		res, err := gate.Check(context.Background(), "ping", "u1", ms(0))
		c.Assert(err, qt.IsNil)
		c.Assert(res.Allowed, qt.IsTrue)
	}
	c.Assert(store.Len(), qt.Equals, 0)
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	gate, store := newTestGate(5 * time.Second)

	_, _ = gate.Check(ctx, "ping", "u1", ms(0))
	_, _ = gate.Check(ctx, "ping", "u2", ms(3000))
	_, _ = gate.Check(ctx, "help", "u1", ms(1000))
	c.Assert(store.Len(), qt.Equals, 3)

	removed, err := gate.Sweep(ctx, ms(5999))
	c.Assert(err, qt.IsNil)
	c.Assert(removed, qt.Equals, 1)
	c.Assert(store.Len(), qt.Equals, 2)

	removed, err = gate.Sweep(ctx, ms(8000))
	c.Assert(err, qt.IsNil)
	c.Assert(removed, qt.Equals, 2)
	c.Assert(store.Len(), qt.Equals, 0)

	// Nothing stale is left behind: the next invocation is a fresh one
	res, err := gate.Check(ctx, "ping", "u1", ms(8000))
	c.Assert(err, qt.IsNil)
	c.Assert(res, qt.DeepEquals, Result{Allowed: true})
}

func TestAdmit(t *testing.T) {
	c := qt.New(t)
	gate, _ := newTestGate(5 * time.Second)
	now := ms(0)
	gate.now = func() time.Time { return now }

	var replies, notices []string
	reply := func(content string) { replies = append(replies, content) }
	notify := func(content string) { notices = append(notices, content) }

	c.Assert(gate.Admit(context.Background(), "ping", "u1", reply, notify), qt.IsTrue)

	now = ms(2000)
	c.Assert(gate.Admit(context.Background(), "ping", "u1", reply, notify), qt.IsFalse)

	c.Assert(gate.Admit(context.Background(), "ping", "", reply, notify), qt.IsFalse)

	c.Assert(replies, qt.DeepEquals, []string{
		"Please wait 3.0 more seconds before using ping",
		GenericErrorText,
	})
	c.Assert(notices, qt.HasLen, 0)
}

type failingStore struct{}

func (failingStore) Acquire(context.Context, string, string, time.Time, time.Duration) (time.Time, bool, error) {
	return time.Time{}, false, errors.New("store is down")
}

func (failingStore) Sweep(context.Context, time.Time, time.Duration) (int, error) {
	return 0, nil
}

func TestAdmitStoreError(t *testing.T) {
	c := qt.New(t)
	gate := New(failingStore{}, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var replies, notices []string
	ok := gate.Admit(context.Background(), "ping", "u1",
		func(content string) { replies = append(replies, content) },
		func(content string) { notices = append(notices, content) },
	)

	c.Assert(ok, qt.IsFalse)
	c.Assert(replies, qt.HasLen, 0)
	c.Assert(notices, qt.DeepEquals, []string{"checking cooldown of ping for u1: store is down"})
}

package cooldown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// GenericErrorText is sent back to the user when the invoking user can't be resolved
const GenericErrorText = "Error Occurred"

var (
	// ErrMissingActor is returned when the invocation carries no user ID
	ErrMissingActor = errors.New("cooldown: missing invoking user")
)

// Result is the outcome of a single Check
type Result struct {
	Allowed bool

	// Remaining is how long the user has to wait before the command is accepted again.
	// It is zero when Allowed is true.
	Remaining time.Duration
}

// Seconds returns the remaining wait time in seconds, rounded to one decimal.
// Halves round up.
func (r Result) Seconds() string {
	ms := r.Remaining.Milliseconds()

	// N.25 and N.75 are the only exact halves a float64 can hold,
	// FormatFloat rounds those to even
	if ms%1000 == 250 || ms%1000 == 750 {
		tenths := (ms + 50) / 100
		return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
	}

	return strconv.FormatFloat(float64(ms)/1000, 'f', 1, 64)
}

// Message is the text shown to a user who is still cooling down on commandID
func (r Result) Message(commandID string) string {
	return fmt.Sprintf("Please wait %s more seconds before using %s", r.Seconds(), commandID)
}

// Gate rejects repeated invocations of the same command by the same user within a fixed window.
// The window is shared by all commands.
type Gate struct {
	store  Store
	window time.Duration
	logger *slog.Logger

	now func() time.Time
}

// New creates a Gate backed by store
func New(store Store, window time.Duration, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}

	return &Gate{
		store:  store,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// Window returns the cooldown window of the gate
func (g *Gate) Window() time.Duration {
	return g.window
}

// Check records an invocation of commandID by userID at now if the user is eligible.
// A denied invocation does not move the user's reference timestamp.
func (g *Gate) Check(ctx context.Context, commandID, userID string, now time.Time) (Result, error) {
	if userID == "" {
		return Result{}, ErrMissingActor
	}

	if g.window <= 0 {
		return Result{Allowed: true}, nil
	}

	last, acquired, err := g.store.Acquire(ctx, commandID, userID, now, g.window)
	if err != nil {
		return Result{}, fmt.Errorf("checking cooldown of %s for %s: %w", commandID, userID, err)
	}

	if acquired {
		return Result{Allowed: true}, nil
	}

	g.logger.Info("user_too_fast", "user_id", userID, "command", commandID)

	return Result{
		Allowed:   false,
		Remaining: last.Add(g.window).Sub(now),
	}, nil
}

// Admit runs Check for the current time and reports a rejection back to the user.
// reply answers the invoking user, notify posts to the channel the invocation came from.
// Admit returns true if the command should run.
func (g *Gate) Admit(ctx context.Context, commandID, userID string, reply, notify func(content string)) bool {
	res, err := g.Check(ctx, commandID, userID, g.now())
	switch {
	case errors.Is(err, ErrMissingActor):
		g.logger.Warn("cooldown_missing_actor", "command", commandID)
		reply(GenericErrorText)
		return false

	case err != nil:
		g.logger.Error("cooldown_check_failed", "command", commandID, "user_id", userID, "error", err)
		notify(err.Error())
		return false

	case !res.Allowed:
		reply(res.Message(commandID))
		return false
	}

	return true
}

// Sweep removes every entry whose window has elapsed at now
func (g *Gate) Sweep(ctx context.Context, now time.Time) (int, error) {
	return g.store.Sweep(ctx, now, g.window)
}

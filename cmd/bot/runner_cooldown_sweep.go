package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pajbot/helperbot/internal/cooldown"
)

const minSweepInterval = time.Second

// sweepInterval is how often expired cooldown entries are dropped for the given window
func sweepInterval(window time.Duration) time.Duration {
	return max(window, minSweepInterval)
}

// startCooldownSweepRunner drops expired cooldown entries every interval until ctx is done
func startCooldownSweepRunner(ctx context.Context, gate *cooldown.Gate, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case now := <-ticker.C:
			removed, err := gate.Sweep(ctx, now)
			if err != nil {
				slog.Error("cooldown_sweep_failed", "error", err)
				continue
			}

			if removed > 0 {
				slog.Debug("cooldown_sweep", "removed", removed)
			}
		}
	}
}

package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"impactmatch-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

const sweepInterval = time.Hour

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(startIntentSweeper),
)

// startIntentSweeper periodically fails abandoned payment intents so stale
// client secrets cannot linger as live checkout sessions.
func startIntentSweeper(lc fx.Lifecycle, checkout commands.CheckoutCommands, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if _, err := checkout.ExpireStaleIntents(ctx); err != nil {
							logger.Error("stale intent sweep failed", "error", err)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"horizon-monitoring/cmd/horizon-cli/commands"
	"horizon-monitoring/lib/telemetry"
)

func main() {
	ctx := context.Background()

	instance, err := telemetry.SetupFromEnv(ctx, "horizon-cli")
	if err == nil {
		defer instance.Shutdown(ctx)
		telemetry.InstrumentPerfStats(ctx)
	} else if !errors.Is(err, os.ErrNotExist) {
		slog.Warn("telemetry disabled", "err", err)
	}

	commands.Execute(ctx)
}

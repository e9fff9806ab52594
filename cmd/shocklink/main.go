package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shocklink/internal/config"
	"shocklink/internal/dispatch"
	"shocklink/internal/host"
	"shocklink/internal/logging"
	"shocklink/internal/metrics"
	"shocklink/internal/shock"
	"shocklink/internal/tracing"
	"shocklink/internal/trigger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := config.LoadOptions(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{Level: opts.LogLevel, File: opts.LogFile})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp, err := tracing.Init(ctx, opts.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	collector := metrics.NewCollector()
	bridge := host.NewBridge(log)
	dispatcher := dispatch.New(dispatch.NewClient(opts.Timeout), collector, tp.Tracer(), log)

	pipeline := trigger.New(trigger.Options{
		Loader:     config.NewLoader(opts.SettingsDir, log),
		Builder:    shock.NewBuilder(nil),
		Dispatcher: dispatcher,
		Presenter:  bridge,
		Pauser:     bridge,
		Collector:  collector,
		Cooldown:   opts.Cooldown,
		Logger:     log,
	})
	go pipeline.Run(ctx, bridge.Deaths())

	mux := http.NewServeMux()
	mux.Handle("/bridge", bridge)
	srv := &http.Server{Addr: opts.ListenAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("listen", opts.ListenAddr).
		Str("settingsDir", opts.SettingsDir).
		Dur("cooldown", opts.Cooldown).
		Msg("shocklink ready")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	stats := collector.Stats()
	log.Info().
		Int64("triggers", stats.Total).
		Int64("successes", stats.Successes).
		Int64("failures", stats.Failures).
		Int64("cancelled", stats.Cancelled).
		Int64("suppressed", stats.Suppressed).
		Float64("p50LatencyMs", stats.P50LatencyMs).
		Float64("p99LatencyMs", stats.P99LatencyMs).
		Msg("shutdown")
	return nil
}

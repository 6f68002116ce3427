package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jt828/log-metrics/internal/bootstrap"
	"github.com/jt828/log-metrics/pkg/metrics"
	metricsImpl "github.com/jt828/log-metrics/pkg/metrics/implementation"
	"github.com/jt828/log-metrics/pkg/observability"
	obsImpl "github.com/jt828/log-metrics/pkg/observability/implementation"
)

func main() {
	source := flag.String("source", "", "source segment (default $LOG_METRICS_SOURCE)")
	prefix := flag.String("prefix", "", "metric name prefix (default $LOG_METRICS_PREFIX)")
	group := flag.Bool("group", false, "write all metrics as one line")
	timerName := flag.String("timer", "", "also emit <timer>.ms for each emission")
	interval := flag.Duration("interval", 0, "repeat the emission every interval until interrupted")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] kind#name[=value] ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		panic(err)
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *prefix != "" {
		cfg.Prefix = *prefix
	}

	obs, err := obsImpl.NewObservability(ctx, obsImpl.Config{
		ServiceName:  "logmetrics",
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		MetricsAddr:  cfg.MetricsAddr,
	})
	if err != nil {
		panic(err)
	}
	log := obs.Logger()

	events, err := parseEvents(flag.Args())
	if err != nil {
		log.Fatal("invalid metric argument", observability.Err(err))
	}
	if len(events) == 0 && *timerName == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := obs.Start(ctx); err != nil {
		log.Error("failed to start observability", observability.Err(err))
	}

	mode := metrics.Immediate
	if *group {
		mode = metrics.Grouping
	}
	sink := bootstrap.InitializeSink(obs.Meter())
	emitter := bootstrap.InitializeEmitter(cfg, mode, sink, log)

	emitOnce := func() error {
		traced := metricsImpl.NewTracedGuard(ctx, obs.Tracer(), "logmetrics.emit")
		return traced.Run(func() error {
			return emitAll(emitter, events, *timerName)
		})
	}

	exitCode := 0
	if err := emitOnce(); err != nil {
		log.Error("failed to emit metrics", observability.Err(err))
		exitCode = 1
	}

	if *interval > 0 && exitCode == 0 {
		log.Info("repeating emission",
			observability.Duration("interval", *interval),
			observability.Int("metrics", len(events)),
		)

		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		err := repeatEmission(sigCtx, *interval, emitOnce)
		stop()
		if err != nil {
			log.Error("failed to emit metrics", observability.Err(err))
			exitCode = 1
		} else {
			log.Info("Shutting down...")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := obs.Close(shutdownCtx); err != nil {
		log.Error("failed to close observability", observability.Err(err))
	}

	if exitCode != 0 {
		shutdownCancel()
		cancel()
		os.Exit(exitCode)
	}
}

// repeatEmission calls emitOnce every interval until ctx is done or an
// emission fails.
func repeatEmission(ctx context.Context, interval time.Duration, emitOnce func() error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := emitOnce(); err != nil {
				return err
			}
		}
	}
}

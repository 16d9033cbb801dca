package main

import (
	"context"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/api"
	"github.com/rxtech-lab/argo-signal/internal/marker"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/monitor"
	"github.com/rxtech-lab/argo-signal/internal/notification"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
)

func monitorCommand() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Analyze the watch list on a schedule and send alerts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Run a single cycle and exit",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runMonitor(ctx, cmd, false)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the monitor and serve its results over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address. Overrides api.address of the config",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runMonitor(ctx, cmd, true)
		},
	}
}

func runMonitor(ctx context.Context, cmd *cli.Command, serve bool) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	source, err := marketdata.NewSource(cfg.Source, log.Named("source"))
	if err != nil {
		return err
	}
	defer marketdata.CloseSource(source) //nolint:errcheck

	analyzer, err := analysis.NewAnalyzer(source, cfg.Parameters, analysis.WithLookback(cfg.Lookback))
	if err != nil {
		return err
	}

	session, err := cfg.Session()
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()
	opts := []monitor.Option{monitor.WithMetrics(m)}

	if session != nil {
		opts = append(opts, monitor.WithSession(session))
	}

	if cfg.Export != nil {
		exporter, err := newExporter("", "", cfg, log.Named("export"))
		if err != nil {
			return err
		}

		opts = append(opts, monitor.WithExporter(exporter))
	}

	journal, err := marker.NewJournal(log.Named("journal"))
	if err != nil {
		return err
	}
	defer journal.Close() //nolint:errcheck

	opts = append(opts, monitor.WithMarker(journal))

	notifier := notification.New(cfg.Notify, log.Named("alert"))
	log.Info("Alert channels configured", zap.Int("count", notifier.Len()))

	mon, err := monitor.New(cfg.MonitorConfig(), analyzer, notifier, log.Named("monitor"), opts...)
	if err != nil {
		return err
	}

	defer func() {
		if cfg.Export == nil || !cfg.Export.Journal {
			return
		}

		if _, err := journal.Write(cfg.Export.Dir); err != nil {
			log.Error("Failed to export alert journal", zap.Error(err))
		}
	}()

	if cmd.Bool("once") {
		_, err := mon.RunCycle(ctx)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return mon.Start(gctx)
	})

	if serve {
		address := cfg.API.Address
		if cmd.String("address") != "" {
			address = cmd.String("address")
		}

		server := api.NewServer(mon.Store(), cfg.Symbols, session, m, log.Named("api")).WithJournal(journal)

		g.Go(func() error {
			return server.Serve(gctx, address)
		})
	}

	return g.Wait()
}

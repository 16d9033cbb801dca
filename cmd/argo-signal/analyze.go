package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze instruments once and print their recommendations",
		ArgsUsage: "[symbol...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "export",
				Usage: "Directory to write the signal frames to",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Frame file format (parquet or csv)",
				Value: string(writer.FormatParquet),
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	symbols := cfg.Symbols
	if cmd.Args().Present() {
		symbols = cmd.Args().Slice()
	}

	source, err := marketdata.NewSource(cfg.Source, log)
	if err != nil {
		return err
	}
	defer marketdata.CloseSource(source) //nolint:errcheck

	analyzer, err := analysis.NewAnalyzer(source, cfg.Parameters, analysis.WithLookback(cfg.Lookback))
	if err != nil {
		return err
	}

	exporter, err := newExporter(cmd.String("export"), writer.Format(cmd.String("format")), cfg, log)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	fmt.Fprintln(out, TitleStyle.Render(fmt.Sprintf("Análise de %d ativos", len(symbols))))

	for _, symbol := range symbols {
		result, err := analyzer.Analyze(ctx, symbol)
		if err != nil {
			if !errors.IsNoResult(err) {
				log.Error("Analysis failed", zap.String("symbol", symbol), zap.Error(err))
			}

			fmt.Fprintln(out, WarnStyle.Render(fmt.Sprintf("%s: sem resultado (%v)", symbol, err)))

			continue
		}

		printRecommendation(out, result.Recommendation)

		if exporter != nil {
			path, err := exporter.WriteFrame(symbol, result.Rows)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, HelpStyle.Render("  frame: "+path))
		}
	}

	return nil
}

// newExporter returns a frame writer for dir, or the export section of the
// config when dir is empty. It returns nil when neither is set.
func newExporter(dir string, format writer.Format, cfg *config.Config, log *logger.Logger) (*writer.FrameWriter, error) {
	if dir == "" && cfg.Export != nil {
		dir = cfg.Export.Dir
		format = cfg.Export.Format
	}

	if dir == "" {
		return nil, nil
	}

	return writer.NewFrameWriter(dir, format, log)
}

func printRecommendation(out io.Writer, rec analysis.Recommendation) {
	lines := []string{
		SignalStyle(rec.Signal).Render(rec.Text()),
	}

	if !rec.Confirmed {
		lines = append(lines, WarnStyle.Render("não confirmado por volume e tendência"))
	}

	lines = append(lines, HelpStyle.Render(fmt.Sprintf("%s · sinal %d · %s", rec.Time.Format("02/01/2006"), rec.Signal, rec.ID)))

	fmt.Fprintln(out, BoxStyle.Render(strings.Join(lines, "\n")))
}

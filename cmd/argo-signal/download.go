package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download historical market data to a parquet or csv file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Ticker symbol",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format. Defaults to two years ago",
				Value:   time.Now().AddDate(-2, 0, 0),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to now",
				Value:   time.Now(),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Data provider (%v)", marketdata.GetSupportedProviders()),
				Value:   string(provider.ProviderYahoo),
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Bar interval",
				Value: string(marketdata.TimespanOneDay),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (parquet or csv)",
				Value:   string(writer.FormatParquet),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Output directory",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "JSON download config of the provider. Replaces the other flags",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "providers",
				Usage: "List the download providers",
				Action: func(_ context.Context, cmd *cli.Command) error {
					out := cmd.Root().Writer
					for _, name := range marketdata.GetSupportedProviders() {
						info, err := marketdata.GetProviderInfo(name)
						if err != nil {
							return err
						}

						fmt.Fprintf(out, "%s  %s\n", TitleStyle.Render(info.Name), HelpStyle.Render(info.Description))
					}

					return nil
				},
			},
		},
		Action: downloadAction,
	}
}

// downloadJSON builds the provider download config from the flags.
func downloadJSON(cmd *cli.Command) (string, error) {
	if file := cmd.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}

		return string(data), nil
	}

	fields := map[string]string{
		"ticker":    cmd.String("ticker"),
		"interval":  cmd.String("interval"),
		"format":    cmd.String("format"),
		"startDate": cmd.Timestamp("start").Format(time.RFC3339),
		"endDate":   cmd.Timestamp("end").Format(time.RFC3339),
		"apiKey":    os.Getenv(config.EnvPolygonAPIKey),
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if err := config.LoadEnv(cmd.String("env-file")); err != nil {
		return err
	}

	raw, err := downloadJSON(cmd)
	if err != nil {
		return err
	}

	downloadConfig, err := marketdata.ParseDownloadConfig(cmd.String("provider"), raw)
	if err != nil {
		return err
	}

	params, err := downloadConfig.ToDownloadParams()
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", params.Ticker)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)

	onProgress := func(current float64, total float64, _ string) {
		if total > 0 {
			bar.ChangeMax64(int64(total))
		}

		_ = bar.Set64(int64(current))
	}

	client, err := marketdata.NewClient(downloadConfig.ToClientConfig(cmd.String("data")), onProgress, log)
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, params)
	_ = bar.Finish()

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, TitleStyle.Render("Saved ")+path)

	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/version"
)

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("debug") {
		return logger.NewDevelopmentLogger()
	}

	return logger.NewLogger()
}

// loadConfig loads the .env file and the config file named by --config.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if err := config.LoadEnv(cmd.String("env-file")); err != nil {
		return nil, err
	}

	return config.Load(cmd.String("config"))
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-signal",
		Usage:   "Technical analysis signals and alerts for stock watch lists",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file. Defaults are used when empty",
				Sources: cli.EnvVars("ARGO_SIGNAL_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "File holding POLYGON_API_KEY and EMAIL_PASSWORD",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Human readable debug logging",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			monitorCommand(),
			serveCommand(),
			downloadCommand(),
			schemaCommand(),
			versionCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the config file or of a provider download config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Print the download config schema of this provider instead",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer

			name := cmd.String("provider")
			if name == "" {
				schema, err := config.Schema()
				if err != nil {
					return err
				}

				fmt.Fprintln(out, schema)
				fmt.Fprintln(out, HelpStyle.Render("secrets: "+strings.Join(config.SecretFields(), ", ")))

				return nil
			}

			schema, err := marketdata.GetDownloadConfigSchema(name)
			if err != nil {
				return err
			}

			secrets, err := marketdata.GetDownloadSecretFields(name)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, schema)

			if len(secrets) > 0 {
				fmt.Fprintln(out, HelpStyle.Render("secrets: "+strings.Join(secrets, ", ")))
			}

			return nil
		},
	}
}

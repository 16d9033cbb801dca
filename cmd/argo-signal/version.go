package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-signal/internal/version"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the build version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersion())
			return err
		},
	}
}

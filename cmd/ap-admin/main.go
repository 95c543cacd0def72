// Package main provides administrative commands for the Approved Premises questionnaires.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "ap-admin",
		Usage:                 "Inspect stored artifacts and the registered journeys",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			NewValidateCommand(),
			NewPagesCommand(),
			NewEventsCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

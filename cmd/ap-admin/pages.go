package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dukex/approved-premises/pkg/cmd"
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/urfave/cli/v3"
)

func NewPagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "pages",
		Usage: "List every registered journey, task and page",
		Action: func(_ context.Context, _ *cli.Command) error {
			return printPages(os.Stdout, cmd.NewRegistry())
		},
	}
}

func printPages(w io.Writer, registry *form.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "JOURNEY\tSECTION\tTASK\tPAGE\tKIND")

	for _, journey := range registry.Journeys() {
		for _, section := range registry.Sections(journey) {
			for _, task := range section.Tasks {
				for _, page := range task.Pages {
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", journey, section.Name, task.ID, page.Name, page.Kind)
				}
			}
		}
	}

	return tw.Flush()
}

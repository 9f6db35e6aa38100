package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/repodoc"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := repodoc.ExportFilter{Limit: c.Limit}
	if c.Source != "" {
		source, err := repodoc.ParseSource(c.Source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
			return err
		}
		filter.Source = &source
	}

	exports, err := deps.Exports.FindExports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repodoc.ErrorMessage(err))
		return err
	}

	if len(exports) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents generated yet. Use 'repodoc fetch' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range exports {
		fmt.Fprintf(tw, "%s\t%s\t%d files\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Source,
			e.Files,
			FormatBytes(e.Bytes),
			e.FileName,
			e.SourceURL,
		)
	}
	return tw.Flush()
}

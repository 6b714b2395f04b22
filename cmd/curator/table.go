package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"curator/internal/migrate"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// renderOutcomes builds the end-of-run summary table.
func renderOutcomes(outcomes []migrate.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, []string{o.Subject, string(o.Status), o.Detail})
	}
	summary := migrate.Summary(outcomes)
	rows = append(rows, []string{
		fmt.Sprintf("total %d", len(outcomes)),
		fmt.Sprintf("%d failed", summary[migrate.StatusFailed]),
		fmt.Sprintf("%d published", summary[migrate.StatusPublished]),
	})
	return renderTable([]string{"Item", "Status", "Detail"}, rows)
}

func printFailures(out io.Writer, outcomes []migrate.Outcome) {
	failed := migrate.Failed(outcomes)
	if len(failed) == 0 {
		return
	}
	fmt.Fprintf(out, "%d item(s) failed and can be retried by rerunning:\n", len(failed))
	for _, o := range failed {
		fmt.Fprintf(out, "  - %s: %v\n", o.Subject, o.Err)
	}
}

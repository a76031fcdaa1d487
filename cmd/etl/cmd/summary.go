package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/galafis/Modern-ETL-Pipeline/internal/metrics"
)

// printRunSummary renders the run record as an aligned two-column table with
// a colored status line.
func printRunSummary(w io.Writer, run *metrics.Run) {
	fmt.Fprintf(w, "\nPipeline run %d\n", run.ID)
	fmt.Fprintln(w, statusLine(run.Status))
	fmt.Fprintln(w)

	rows := [][2]string{
		{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", run.Duration.String()},
		{"Rows extracted", humanize.Comma(int64(run.RowsExtracted))},
		{"Rows transformed", humanize.Comma(int64(run.RowsTransformed))},
		{"Rows loaded", humanize.Comma(int64(run.RowsLoaded))},
	}
	for _, stage := range run.Stages {
		label := "Stage " + stage.Name
		value := fmt.Sprintf("%s -> %s rows (%s)",
			humanize.Comma(int64(stage.RowsIn)),
			humanize.Comma(int64(stage.RowsOut)),
			stage.Duration)
		rows = append(rows, [2]string{label, value})
	}
	for _, src := range run.Sources {
		rows = append(rows, [2]string{"Source " + src.Name, outcome(src.Rows, src.Error)})
	}
	for _, tgt := range run.Targets {
		rows = append(rows, [2]string{"Target " + tgt.Name, outcome(tgt.Rows, tgt.Error)})
	}

	printTable(w, rows)

	if len(run.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors (%d):\n", len(run.Errors))
		for _, msg := range run.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

func statusLine(status metrics.Status) string {
	switch status {
	case metrics.StatusSuccess:
		return color.Green.Sprint("Status: SUCCESS")
	case metrics.StatusPartial:
		return color.Yellow.Sprint("Status: PARTIAL")
	default:
		return color.Red.Sprint("Status: FAILED")
	}
}

func outcome(rows int, errMsg string) string {
	if errMsg != "" {
		return "failed: " + errMsg
	}
	return humanize.Comma(int64(rows)) + " rows"
}

// printTable prints label/value pairs with the labels padded to a shared
// width. runewidth keeps the alignment correct for non-ASCII labels.
func printTable(w io.Writer, rows [][2]string) {
	width := 0
	for _, row := range rows {
		if lw := runewidth.StringWidth(row[0]); lw > width {
			width = lw
		}
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s%s  %s\n",
			row[0],
			strings.Repeat(" ", width-runewidth.StringWidth(row[0])),
			row[1])
	}
}

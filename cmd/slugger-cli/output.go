package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Percentile bands used to colour table cells.
const (
	strongPercentile = 70
	weakPercentile   = 30
)

// writeTable prints a titled borderless table.
func writeTable(w io.Writer, title string, headers []string, rows [][]string) error {
	color.New(color.Bold).Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("table render: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// percentileCell formats a percentile the way the chart badge shows it.
func percentileCell(p float64) string {
	s := fmt.Sprintf("%d", int(p))
	switch {
	case p >= strongPercentile:
		return color.RedString(s)
	case p <= weakPercentile:
		return color.BlueString(s)
	default:
		return s
	}
}

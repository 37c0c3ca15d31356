// Copyright (c) alecmestroni 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package summary renders the final per-task result table.
package summary

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecmestroni/npm-run-all-next/internal/runtask"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	styleKilled  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleFailure = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var headers = [4]string{"Task", "FinalExitCode", "Retries", "Time(s)"}

// Write renders the summary table for the ordered result list. Row order is
// the scheduling order; styling is per row: success white, killed gray,
// failure red.
func Write(w io.Writer, results []runtask.TaskResult) error {
	rows := make([][4]string, len(results))
	widths := [4]int{}

	for i, h := range headers {
		widths[i] = len(h)
	}

	for i, r := range results {
		rows[i] = [4]string{
			r.Name,
			codeCell(r),
			strconv.Itoa(r.Retries),
			fmt.Sprintf("%.2f", r.Duration.Seconds()),
		}

		for c, cell := range rows[i] {
			if len(cell) > widths[c] {
				widths[c] = len(cell)
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", styleHeader.Render(formatRow(headers, widths))); err != nil {
		return err
	}

	for i, r := range results {
		style := styleSuccess

		switch {
		case r.Killed():
			style = styleKilled
		case r.Failed():
			style = styleFailure
		}

		if _, err := fmt.Fprintln(w, style.Render(formatRow(rows[i], widths))); err != nil {
			return err
		}
	}

	return nil
}

func codeCell(r runtask.TaskResult) string {
	switch {
	case r.Code == nil:
		return "-"
	case r.Killed():
		return strconv.Itoa(runtask.KilledExitCode) + " (Killed)"
	default:
		return strconv.Itoa(*r.Code)
	}
}

func formatRow(cells [4]string, widths [4]int) string {
	return fmt.Sprintf("%-*s | %-*s | %-*s | %-*s",
		widths[0], cells[0],
		widths[1], cells[1],
		widths[2], cells[2],
		widths[3], cells[3],
	)
}

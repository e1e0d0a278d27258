// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package render formats simulation results as text, JSON, and SVG charts.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	strf "github.com/petenewcomb/strf-go"
)

// Times are shown with one decimal place.
func formatTime(t float64) string {
	return fmt.Sprintf("%.1f", t)
}

// WriteTable writes the per-job results table followed by the aggregate
// figures.
func WriteTable(w io.Writer, r *strf.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tARRIVAL\tBURST\tSTART\tEND\tTURNAROUND\tWAITING\tCHUNKS")
	for _, jr := range r.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			jr.ID,
			formatTime(jr.ArrivalTime),
			formatTime(jr.BurstTime),
			formatTime(jr.StartTime),
			formatTime(jr.EndTime),
			formatTime(jr.TurnaroundTime),
			formatTime(jr.WaitingTime),
			jr.ChunkCount,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\naverage turnaround: %.2f\naverage waiting: %.2f\nmakespan: %s\n",
		r.AverageTurnaround, r.AverageWaiting, formatTime(r.Makespan))
	if err != nil {
		return err
	}
	for i, u := range r.Utilization() {
		if _, err := fmt.Fprintf(w, "%s utilization: %.1f%%\n", strf.ProcessorID(i), 100*u); err != nil {
			return err
		}
	}
	return nil
}

// WriteGantt writes one line per executed chunk in dispatch order.
func WriteGantt(w io.Writer, r *strf.Result) error {
	for _, e := range r.Gantt {
		_, err := fmt.Fprintf(w, "%s-%s %s %s\n",
			formatTime(e.StartTime), formatTime(e.EndTime()), e.Processor, e.JobID)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteQueue writes one line per scheduling round listing the waiting jobs
// and their remaining times in scheduling order.
func WriteQueue(w io.Writer, r *strf.Result) error {
	var sb strings.Builder
	for _, snap := range r.Queue {
		sb.Reset()
		sb.WriteString("t=")
		sb.WriteString(formatTime(snap.Time))
		for _, e := range snap.Entries {
			fmt.Fprintf(&sb, " %s(%s)", e.JobID, formatTime(e.RemainingTime))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes the table, Gantt listing, and queue listing separated
// by headings.
func WriteText(w io.Writer, r *strf.Result) error {
	sections := []struct {
		title string
		write func(io.Writer, *strf.Result) error
	}{
		{"Results", WriteTable},
		{"Gantt", WriteGantt},
		{"Queue", WriteQueue},
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", s.title); err != nil {
			return err
		}
		if err := s.write(w, r); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, r *strf.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/migrate"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputYAML  outputFormat = "yaml"
	outputJSON  outputFormat = "json"
)

func addOutputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "output", "o", string(outputTable), "output format: table, yaml or json")
}

func parseOutputFormat(raw string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case outputTable, outputYAML, outputJSON:
		return f, nil
	case "":
		return outputTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, yaml or json)", raw)
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// historyRow is the printable form of a status history entry.
type historyRow struct {
	ChangedAt time.Time `json:"changed_at" yaml:"changed_at"`
	From      string    `json:"from"       yaml:"from"`
	To        string    `json:"to"         yaml:"to"`
	ChangedBy string    `json:"changed_by" yaml:"changed_by"`
	DocketNo  string    `json:"docket_no"  yaml:"docket_no"`
}

func historyRows(entries []*model.StatusHistoryEntry) []historyRow {
	rows := make([]historyRow, 0, len(entries))
	for _, e := range entries {
		row := historyRow{
			ChangedAt: e.ChangedAt.UTC(),
			From:      "-",
			To:        string(e.NewStatus),
			ChangedBy: string(e.ChangedBy),
		}
		if e.OldStatus != nil {
			row.From = string(*e.OldStatus)
		}
		if e.DocketNo != nil {
			row.DocketNo = *e.DocketNo
		}
		rows = append(rows, row)
	}
	return rows
}

func renderHistory(w io.Writer, format outputFormat, entries []*model.StatusHistoryEntry) error {
	rows := historyRows(entries)
	switch format {
	case outputYAML:
		return encodeYAML(w, rows)
	case outputJSON:
		return encodeJSON(w, rows)
	}

	if len(rows) == 0 {
		return writef(w, "No history recorded\n")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "CHANGED AT\tFROM\tTO\tBY\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writef(tw, "%s\t%s\t%s\t%s\n",
			r.ChangedAt.Format(time.RFC3339), r.From, r.To, r.ChangedBy); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func renderTracker(w io.Writer, format outputFormat, summary model.TrackerSummary) error {
	switch format {
	case outputYAML:
		return encodeYAML(w, summary)
	case outputJSON:
		return encodeJSON(w, summary)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "SIZE\tLOCATION\tCUSTOMER\tDOCKET\tDRIVER\tCOMPLETED\n"); err != nil {
		return err
	}
	for _, loc := range summary.Locations {
		customer := "-"
		if loc.CustomerName != nil {
			customer = *loc.CustomerName
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			loc.Size, loc.Location, customer, loc.DocketNo, loc.DriverName,
			loc.CompletedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if err := writef(w, "\nOn site: %s\nIn yard: %s\n",
		formatCounts(summary.OnSite), formatCounts(summary.InYard)); err != nil {
		return err
	}
	return nil
}

func renderMigrations(w io.Writer, format outputFormat, migrations []migrate.Migration) error {
	switch format {
	case outputYAML:
		return encodeYAML(w, migrations)
	case outputJSON:
		return encodeJSON(w, migrations)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "VERSION\tAPPLIED\tAPPLIED AT\tNOTE\n"); err != nil {
		return err
	}
	for _, m := range migrations {
		appliedAt := "-"
		if m.AppliedAt != nil {
			appliedAt = m.AppliedAt.UTC().Format(time.RFC3339)
		}
		note := ""
		if m.Drifted {
			note = "checksum drift"
		}
		if err := writef(tw, "%s\t%t\t%s\t%s\n", m.Version, m.Applied, appliedAt, note); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// formatCounts prints size counts in skip size order, e.g. "8yd x2, 12yd x1".
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	order := make(map[string]int, len(model.SkipSizeValues()))
	for i, s := range model.SkipSizeValues() {
		order[s] = i
	}
	sizes := make([]string, 0, len(counts))
	for s := range counts {
		sizes = append(sizes, s)
	}
	sort.Slice(sizes, func(i, j int) bool {
		oi, iok := order[sizes[i]]
		oj, jok := order[sizes[j]]
		if iok && jok {
			return oi < oj
		}
		if iok != jok {
			return iok
		}
		return sizes[i] < sizes[j]
	})
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, fmt.Sprintf("%syd x%d", s, counts[s]))
	}
	return strings.Join(parts, ", ")
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

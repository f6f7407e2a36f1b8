package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/irishmetals/skipdispatch/config"
	"github.com/irishmetals/skipdispatch/internal/domain/model"
	"github.com/irishmetals/skipdispatch/internal/migrate"
)

func sampleHistory() []*model.StatusHistoryEntry {
	created := model.JobStatusCreated
	docket := "150125-0001-IMR"
	at := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	return []*model.StatusHistoryEntry{
		{ID: 1, SkipJobID: "j1", DocketNo: &docket, NewStatus: model.JobStatusCreated, ChangedBy: model.ActorOffice, ChangedAt: at},
		{ID: 2, SkipJobID: "j1", DocketNo: &docket, OldStatus: &created, NewStatus: model.JobStatusSent, ChangedBy: model.ActorOffice, ChangedAt: at.Add(time.Minute)},
	}
}

func TestParseOutputFormat(t *testing.T) {
	for raw, want := range map[string]outputFormat{"": outputTable, "TABLE": outputTable, "yaml": outputYAML, " json ": outputJSON} {
		got, err := parseOutputFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := parseOutputFormat("xml")
	require.Error(t, err)
}

func TestRenderHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderHistory(&buf, outputTable, sampleHistory()))

	out := buf.String()
	assert.Contains(t, out, "CHANGED AT")
	assert.Contains(t, out, "2025-01-15T09:30:00Z")
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "sent")
}

func TestRenderHistoryEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderHistory(&buf, outputTable, nil))
	assert.Equal(t, "No history recorded\n", buf.String())
}

func TestRenderHistoryYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderHistory(&buf, outputYAML, sampleHistory()))

	var rows []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "-", rows[0]["from"])
	assert.Equal(t, "created", rows[1]["from"])
	assert.Equal(t, "150125-0001-IMR", rows[1]["docket_no"])
}

func TestRenderTrackerJSON(t *testing.T) {
	name := "Murphy Construction"
	summary := model.TrackerSummary{
		Locations: []model.SkipLocation{{
			Size: "8", Location: model.SkipLocationSite, CustomerName: &name,
			DocketNo: "150125-0001-IMR", DriverName: "Pat Byrne",
		}},
		OnSite: map[string]int{"8": 1},
		InYard: map[string]int{},
	}

	var buf bytes.Buffer
	require.NoError(t, renderTracker(&buf, outputJSON, summary))

	var decoded model.TrackerSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.OnSite["8"])
	require.Len(t, decoded.Locations, 1)
	assert.Equal(t, "Pat Byrne", decoded.Locations[0].DriverName)
}

func TestRenderTrackerTableTotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTracker(&buf, outputTable, model.TrackerSummary{
		OnSite: map[string]int{"12": 1, "8": 2},
	}))
	assert.Contains(t, buf.String(), "On site: 8yd x2, 12yd x1")
	assert.Contains(t, buf.String(), "In yard: none")
}

func TestGuardRemoteHost(t *testing.T) {
	local := &commandContext{Config: config.AppConfig{Postgres: config.DBConfig{Host: "localhost"}}}
	require.NoError(t, guardRemoteHost(local, false))

	remote := &commandContext{Config: config.AppConfig{Postgres: config.DBConfig{Host: "db.prod.example"}}}
	err := guardRemoteHost(remote, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--allow-remote")
	require.NoError(t, guardRemoteHost(remote, true))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand(nil)
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "seed", "history", "tracker", "resend", "docket"})

	for _, name := range []string{"history", "resend", "docket"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Contains(t, cmd.Use, "<job-id|docket-no>", name)
	}
}

func TestRenderMigrationsTable(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, renderMigrations(&buf, outputTable, []migrate.Migration{
		{Version: "0001_reference_tables.sql", Applied: true, AppliedAt: &at},
		{Version: "0002_skip_jobs.sql", Applied: true, AppliedAt: &at, Drifted: true},
		{Version: "0003_completion_and_history.sql"},
	}))

	out := buf.String()
	assert.Contains(t, out, "0001_reference_tables.sql")
	assert.Contains(t, out, "2025-01-02T03:04:05Z")
	assert.Contains(t, out, "checksum drift")
	assert.Contains(t, out, "false")
}

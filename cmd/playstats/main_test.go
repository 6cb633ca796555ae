package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/fingerprint"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func writeTrack(t *testing.T, dir, name, title string) string {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xAA}, 256))
	buf.WriteString("TAG")
	for _, s := range []string{title, "Band", "Record"} {
		f := bytes.Repeat([]byte{' '}, 30)
		copy(f, s)
		buf.Write(f)
	}
	buf.WriteString("2025")
	buf.Write(bytes.Repeat([]byte{' '}, 30))
	buf.WriteByte(0)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestCLI_RecordQueryMaintainExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	db := filepath.Join(dir, "data", "playstats.db")

	a := writeTrack(t, dir, "a.mp3", "Alpha")
	b := writeTrack(t, dir, "b.mp3", "Bravo")
	at := time.Date(2025, 7, 15, 12, 0, 0, 0, time.Local).Format(time.RFC3339)

	out := run(t, "--db", db, "record", "--at", at, "--listened", "3m", a, a, a, b)
	require.Contains(t, out, "recorded Alpha")

	out = run(t, "--db", db, "month", "2025-07", "--format", "json")
	var resp v1.PeriodResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, int64(4), resp.TotalPlays)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, "Alpha", resp.Entries[0].Title)
	require.Equal(t, int64(3), resp.Entries[0].Playcount)

	out = run(t, "--db", db, "year", "2025", "--format", "table")
	require.Contains(t, out, "Alpha")
	require.Contains(t, out, "Bravo")

	keyB := fingerprint.OfString(b)
	out = run(t, "--db", db, "delete", "2025-07", keyB)
	require.Contains(t, out, "deleted")

	out = run(t, "--db", db, "recompute", "2025-07")
	require.Contains(t, out, "2 counters")

	csvPath := filepath.Join(dir, "july.csv")
	out = run(t, "--db", db, "export", "2025-07", "--out", csvPath)
	require.Contains(t, out, "wrote 2 entries")
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	require.Contains(t, string(data), keyB)
}

func TestCLI_ConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playstats.yaml")

	out := run(t, "config", "init", path)
	require.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "close_timeout")
}

func TestFormatDelta(t *testing.T) {
	require.Equal(t, "+3", formatDelta(3))
	require.Equal(t, "0", formatDelta(0))
	require.Equal(t, "-2", formatDelta(-2))
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, v1.PeriodResponse{Period: "1999-01"})
	require.Equal(t, "No plays recorded for 1999-01.\n", buf.String())
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleResponse() v1.PeriodResponse {
	return v1.PeriodResponse{
		Period:      "2025-07",
		Granularity: "month",
		Previous:    "2025-06",
		Next:        "2025-08",
		Compare:     "2024-07",
		TotalPlays:  4,
		Entries: []v1.PeriodEntry{
			{Period: "2025-07", TrackKey: "7ef6ca66d2534976", Path: "/music/a.flac", Title: "A, with comma", Artist: "X", Album: "Y", Playcount: 3, PrevPlaycount: 1, TotalListenedSeconds: decimal.RequireFromString("540.5")},
			{Period: "2025-07", TrackKey: "0000000000000001", Path: "/music/b.flac", Title: "B", Playcount: 1},
		},
	}
}

func TestWriteFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "july.csv")
	require.NoError(t, WriteFile(path, sampleResponse(), FormatCSV))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, csvHeader, records[0])
	require.Equal(t, []string{"2025-07", "7ef6ca66d2534976", "/music/a.flac", "A, with comma", "X", "Y", "3", "1", "2", "540.500"}, records[1])
	require.Equal(t, "0.000", records[2][9])
}

func TestWriteFile_JSONReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "july.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	require.NoError(t, WriteFile(path, sampleResponse(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got v1.PeriodResponse
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, "2025-07", got.Period)
	require.Equal(t, int64(4), got.TotalPlays)
	require.Len(t, got.Entries, 2)
	require.True(t, decimal.RequireFromString("540.5").Equal(got.Entries[0].TotalListenedSeconds))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)

	require.Equal(t, FormatCSV, FormatFromPath("out/Report.CSV"))
	require.Equal(t, FormatJSON, FormatFromPath("out/report.json"))
	require.Equal(t, FormatJSON, FormatFromPath("out/report"))
}

// Package export writes period query results to disk.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/natefinch/atomic"
)

// Format selects the file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "json" or "csv", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or csv)", s)
	}
}

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

var csvHeader = []string{
	"period", "track_key", "path", "title", "artist", "album",
	"playcount", "prev_playcount", "delta", "total_listened_seconds",
}

// Write encodes resp to w.
func Write(w io.Writer, resp v1.PeriodResponse, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, e := range resp.Entries {
			record := []string{
				e.Period,
				e.TrackKey,
				e.Path,
				e.Title,
				e.Artist,
				e.Album,
				strconv.FormatInt(e.Playcount, 10),
				strconv.FormatInt(e.PrevPlaycount, 10),
				strconv.FormatInt(e.Delta(), 10),
				e.TotalListenedSeconds.StringFixed(3),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteFile encodes resp and atomically replaces path with the result, so
// readers never see a partial export.
func WriteFile(path string, resp v1.PeriodResponse, format Format) error {
	var buf bytes.Buffer
	if err := Write(&buf, resp, format); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}

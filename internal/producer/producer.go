// Package producer turns audio files into play events. Deciding whether a
// play qualifies is left to the caller.
package producer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	v1 "github.com/aevon-lab/playstats/internal/api/v1"
	"github.com/aevon-lab/playstats/internal/core/fingerprint"
	"github.com/dhowden/tag"
)

// Tags is the metadata cached alongside a play.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// ReadTags reads title, artist and album from r. Files without readable tags
// get the file name of path, minus extension, as title.
func ReadTags(r io.ReadSeeker, path string) Tags {
	fallback := Tags{Title: titleFromName(path)}

	meta, err := tag.ReadFrom(r)
	if err != nil {
		slog.Debug("[Producer] No readable tags, using file name", "path", path, "error", err)
		return fallback
	}

	t := Tags{
		Title:  clean(meta.Title()),
		Artist: clean(meta.Artist()),
		Album:  clean(meta.Album()),
	}
	if t.Artist == "" {
		t.Artist = clean(meta.AlbumArtist())
	}
	if t.Title == "" {
		t.Title = fallback.Title
	}
	return t
}

// EventFromFile builds a play event for the file at path. The path is made
// absolute so every caller fingerprints the same track identically.
func EventFromFile(path string, playedAt time.Time, listened time.Duration) (v1.PlayEvent, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return v1.PlayEvent{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return v1.PlayEvent{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	tags := ReadTags(f, abs)
	evt := v1.PlayEvent{
		TrackKey:        fingerprint.OfString(abs),
		Path:            abs,
		Title:           tags.Title,
		Artist:          tags.Artist,
		Album:           tags.Album,
		DurationSeconds: listened.Seconds(),
	}
	if !playedAt.IsZero() {
		evt.PlayedAt = playedAt.UnixMilli()
	}
	return evt, nil
}

func titleFromName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

package v1

import (
	"fmt"
	"time"

	"github.com/aevon-lab/playstats/internal/core/fingerprint"
)

// PlayEvent is one qualifying play reported by the host player.
// It is consumed exactly once by the writer and never mutated after it is posted.
type PlayEvent struct {
	// TrackKey is the fingerprint of Path in its 16 hex character form.
	// Producers normally supply it; Normalize fills it in when empty.
	TrackKey string `json:"track_key"`

	// Path is the stable identifier of the track (file path or URL).
	Path string `json:"path" binding:"required"`

	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`

	// PlayedAt is when the play happened, in epoch milliseconds. Zero means
	// unset and Normalize replaces it with the receive time, so an instant of
	// exactly 1970-01-01T00:00:00Z cannot be recorded.
	PlayedAt int64 `json:"played_at" binding:"gte=0"`

	// DurationSeconds is the track length reported by the producer. Zero when unknown;
	// the play still counts once.
	DurationSeconds float64 `json:"duration_seconds" binding:"gte=0"`
}

// Normalize fills the derived fields: the track key from the path and the play
// time from now when the producer left them empty. A PlayedAt of 0 counts as empty.
func (e *PlayEvent) Normalize(now time.Time) {
	if e.TrackKey == "" {
		e.TrackKey = fingerprint.OfString(e.Path)
	}
	if e.PlayedAt == 0 {
		e.PlayedAt = now.UnixMilli()
	}
}

// Validate checks the fields the store relies on.
func (e *PlayEvent) Validate() error {
	if e.Path == "" {
		return fmt.Errorf("path is required")
	}
	if e.TrackKey != "" {
		if _, err := fingerprint.ParseKey(e.TrackKey); err != nil {
			return err
		}
	}
	if e.PlayedAt < 0 {
		return fmt.Errorf("played_at must not be negative")
	}
	if e.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must not be negative")
	}
	return nil
}

// PlayedTime returns PlayedAt as a time.Time.
func (e *PlayEvent) PlayedTime() time.Time {
	return time.UnixMilli(e.PlayedAt)
}

package v1

import "github.com/shopspring/decimal"

// PeriodEntry is one row of a month or year query.
type PeriodEntry struct {
	Period   string `json:"period"`
	TrackKey string `json:"track_key"`
	Path     string `json:"path"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`

	Playcount int64 `json:"playcount"`

	// PrevPlaycount is the playcount of the same key in the same period one
	// year earlier. Zero when the key was not played then.
	PrevPlaycount int64 `json:"prev_playcount"`

	// TotalListenedSeconds is derived from the journal; zero when the producer
	// does not report durations.
	TotalListenedSeconds decimal.Decimal `json:"total_listened_seconds"`
}

// Delta is the year-over-year change in plays.
func (e PeriodEntry) Delta() int64 {
	return e.Playcount - e.PrevPlaycount
}

// PeriodResponse is the JSON body returned by the stats endpoints.
type PeriodResponse struct {
	Period      string        `json:"period"`
	Granularity string        `json:"granularity"`
	Previous    string        `json:"previous"`
	Next        string        `json:"next"`
	Compare     string        `json:"compare"`
	TotalPlays  int64         `json:"total_plays"`
	Entries     []PeriodEntry `json:"entries"`
}

package sqlstore

// SQL for the journal and the monthly counters. Written with ? placeholders;
// the store rebinds them for postgres.

const (
	// queryInsertEvent appends one journal row. RETURNING gives the surrogate id
	// on both dialects.
	queryInsertEvent = `
		INSERT INTO play_log (track_crc, path, title, artist, album, played_at, length_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	// queryUpsertCounter is the single atomic insert-or-increment. Metadata is
	// overwritten so the newest play's tags win.
	queryUpsertCounter = `
		INSERT INTO monthly_count (ym, track_crc, path, title, artist, album, playcount)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (ym, track_crc) DO UPDATE SET
			playcount = monthly_count.playcount + excluded.playcount,
			path      = excluded.path,
			title     = excluded.title,
			artist    = excluded.artist,
			album     = excluded.album
	`

	queryDeleteCounter = `DELETE FROM monthly_count WHERE ym = ? AND track_crc = ?`

	queryDeleteMonth = `DELETE FROM monthly_count WHERE ym = ?`

	// queryJournalRange feeds recompute. Rows are filtered again in Go through
	// period.FromMillis so both paths share one month derivation.
	queryJournalRange = `
		SELECT id, track_crc, path, COALESCE(title, ''), COALESCE(artist, ''), COALESCE(album, ''), played_at
		FROM play_log
		WHERE played_at >= ? AND played_at < ?
		ORDER BY id ASC
	`

	// queryMonthCounters joins each counter with the same key's row in the comparison month.
	queryMonthCounters = `
		SELECT
			c.ym, c.track_crc, COALESCE(c.path, ''), COALESCE(c.title, ''),
			COALESCE(c.artist, ''), COALESCE(c.album, ''), c.playcount,
			COALESCE(p.playcount, 0)
		FROM monthly_count c
		LEFT JOIN monthly_count p ON p.track_crc = c.track_crc AND p.ym = ?
		WHERE c.ym = ?
		ORDER BY c.playcount DESC
	`

	queryCountersBetween = `
		SELECT ym, track_crc, COALESCE(path, ''), COALESCE(title, ''),
			COALESCE(artist, ''), COALESCE(album, ''), playcount
		FROM monthly_count
		WHERE ym >= ? AND ym <= ?
		ORDER BY ym ASC, playcount DESC
	`

	queryListenedSeconds = `
		SELECT track_crc, COALESCE(SUM(length_seconds), 0)
		FROM play_log
		WHERE played_at >= ? AND played_at < ?
		GROUP BY track_crc
	`
)

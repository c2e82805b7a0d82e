package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/meain/ytcaptions/internal/youtube"
)

// Entry is one stored caption fetch. RequestedLang is the language asked
// for (possibly empty), Lang the language of the track that was used.
type Entry struct {
	ID            int64
	Input         string
	VideoID       string
	Title         string
	Author        string
	RequestedLang string
	Lang          string
	FetchedAt     time.Time
	SegmentCount  int
	Segments      []youtube.Segment
}

// Request is what is needed to repeat a fetch.
type Request struct {
	Input string
	Lang  string
}

func CreateDB(dbPath string) (*sql.DB, bool, error) {
	_, ferr := os.Stat(dbPath) // check if already exists

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, false, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	// Fetch workers write concurrently; SQLite takes one writer at a time.
	db.SetMaxOpenConns(1)

	return db, os.IsNotExist(ferr), nil
}

func InitDatabase(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS captions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			video_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			requested_lang TEXT NOT NULL DEFAULT '',
			lang TEXT NOT NULL,
			segments TEXT NOT NULL,
			segment_count INTEGER NOT NULL,
			text_bytes INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create captions table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS captions_video ON captions (video_id, requested_lang)`)
	if err != nil {
		return fmt.Errorf("create captions index: %w", err)
	}

	return nil
}

// SaveEntry stores e, replacing any earlier fetch of the same video with the
// same requested language, and sets e.ID.
func SaveEntry(db *sql.DB, e *Entry) error {
	segments, err := json.Marshal(e.Segments)
	if err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	textBytes := 0
	for _, s := range e.Segments {
		textBytes += len(s.Text)
	}
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now()
	}
	e.SegmentCount = len(e.Segments)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM captions WHERE video_id = ? AND requested_lang = ?", e.VideoID, e.RequestedLang)
	if err != nil {
		return fmt.Errorf("delete existing entry: %w", err)
	}

	res, err := tx.Exec(`
		INSERT INTO captions (input, video_id, title, author, requested_lang, lang, segments, segment_count, text_bytes, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Input, e.VideoID, e.Title, e.Author, e.RequestedLang, e.Lang, string(segments), e.SegmentCount, textBytes, e.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("get entry id: %w", err)
	}

	return tx.Commit()
}

// GetAllEntries lists stored fetches without their segments
func GetAllEntries(db *sql.DB) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT id, input, video_id, title, author, requested_lang, lang, segment_count, fetched_at
		FROM captions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt int64
		if err := rows.Scan(&e.ID, &e.Input, &e.VideoID, &e.Title, &e.Author, &e.RequestedLang, &e.Lang, &e.SegmentCount, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.FetchedAt = time.Unix(fetchedAt, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetAllRequests returns the input and requested language of every entry
func GetAllRequests(db *sql.DB) ([]Request, error) {
	entries, err := GetAllEntries(db)
	if err != nil {
		return nil, err
	}

	requests := make([]Request, 0, len(entries))
	for _, e := range entries {
		requests = append(requests, Request{Input: e.Input, Lang: e.RequestedLang})
	}
	return requests, nil
}

// GetEntryByID retrieves a single entry with its segments. It returns nil
// when there is no such entry.
func GetEntryByID(db *sql.DB, id int64) (*Entry, error) {
	var e Entry
	var segments string
	var fetchedAt int64
	err := db.QueryRow(`
		SELECT id, input, video_id, title, author, requested_lang, lang, segments, segment_count, fetched_at
		FROM captions
		WHERE id = ?`, id).Scan(&e.ID, &e.Input, &e.VideoID, &e.Title, &e.Author, &e.RequestedLang, &e.Lang, &segments, &e.SegmentCount, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query entry: %w", err)
	}

	if err := json.Unmarshal([]byte(segments), &e.Segments); err != nil {
		return nil, fmt.Errorf("decode segments of entry %d: %w", id, err)
	}
	e.FetchedAt = time.Unix(fetchedAt, 0)
	return &e, nil
}

// RemoveEntry removes an entry by its ID
func RemoveEntry(db *sql.DB, id int64) error {
	result, err := db.Exec("DELETE FROM captions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("no entry found with ID %d", id)
	}

	return nil
}

func GetDatabaseStats(db *sql.DB) (map[string]int, error) {
	stats := make(map[string]int)

	var entries, segments, textBytes, videos int
	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(segment_count), 0), COALESCE(SUM(text_bytes), 0), COUNT(DISTINCT video_id)
		FROM captions`).Scan(&entries, &segments, &textBytes, &videos)
	if err != nil {
		return nil, fmt.Errorf("calculate stats: %w", err)
	}
	stats["entries"] = entries
	stats["videos"] = videos
	stats["segments"] = segments
	stats["total_text_bytes"] = textBytes

	return stats, nil
}

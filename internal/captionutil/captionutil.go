package captionutil

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/meain/ytcaptions/internal/db"
	"github.com/meain/ytcaptions/internal/youtube"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const maxParallelFetches = 4

// Fetcher is satisfied by *youtube.Client.
type Fetcher interface {
	GetVideo(ctx context.Context, videoID string, opts *youtube.Options) (*youtube.Video, error)
}

// Result is the outcome of fetching one input.
type Result struct {
	Input string
	Entry *db.Entry
	Err   error
}

// FetchCaptions fetches captions for input and, when database is not nil,
// stores them.
func FetchCaptions(ctx context.Context, database *sql.DB, f Fetcher, input string, opts youtube.Options) (*db.Entry, error) {
	v, err := f.GetVideo(ctx, input, &opts)
	if err != nil {
		return nil, err
	}
	id := v.ID

	entry := &db.Entry{
		Input:         input,
		VideoID:       id,
		RequestedLang: opts.Lang,
		Lang:          v.Track.LanguageCode,
		Segments:      v.Segments,
		SegmentCount:  len(v.Segments),
	}
	if v.Details != nil {
		entry.Title = v.Details.Title
		entry.Author = v.Details.Author
	}

	if database == nil {
		return entry, nil
	}
	if err := db.SaveEntry(database, entry); err != nil {
		return nil, fmt.Errorf("store captions for %s: %w", id, err)
	}
	slog.Info("stored captions",
		slog.Int64("id", entry.ID), slog.String("video", id), slog.Int("segments", entry.SegmentCount))
	return entry, nil
}

// FetchAll runs FetchCaptions for every input on at most maxWorkers
// goroutines, starting no more than limiter allows. Results come back in
// input order; a failing input does not stop the others.
func FetchAll(ctx context.Context, database *sql.DB, f Fetcher, inputs []string, opts youtube.Options, maxWorkers int, limiter *rate.Limiter) []Result {
	if maxWorkers <= 0 {
		maxWorkers = maxParallelFetches
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, input := range inputs {
		i, input := i, input
		results[i].Input = input
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				results[i].Err = err
				return nil
			}
			entry, err := FetchCaptions(ctx, database, f, input, opts)
			if err != nil {
				results[i].Err = fmt.Errorf("%s: %w", input, err)
				return nil
			}
			results[i].Entry = entry
			return nil
		})
	}
	_ = g.Wait() // workers report through results

	return results
}

// Refetch repeats every request stored in database and replaces the stored
// entries with fresh ones.
func Refetch(ctx context.Context, database *sql.DB, f Fetcher, maxWorkers int, limiter *rate.Limiter) ([]Result, error) {
	requests, err := db.GetAllRequests(database)
	if err != nil {
		return nil, err
	}

	// Group by requested language so each group shares its Options.
	byLang := make(map[string][]string)
	var langs []string
	for _, r := range requests {
		if _, ok := byLang[r.Lang]; !ok {
			langs = append(langs, r.Lang)
		}
		byLang[r.Lang] = append(byLang[r.Lang], r.Input)
	}

	var results []Result
	for _, lang := range langs {
		results = append(results, FetchAll(ctx, database, f, byLang[lang], youtube.Options{Lang: lang}, maxWorkers, limiter)...)
	}
	return results, nil
}

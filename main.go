package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/meain/ytcaptions/cmd"
	"github.com/meain/ytcaptions/internal/captionutil"
	"github.com/meain/ytcaptions/internal/config"
	"github.com/meain/ytcaptions/internal/db"
	"github.com/meain/ytcaptions/internal/render"
	"github.com/meain/ytcaptions/internal/webutil"
	"github.com/meain/ytcaptions/internal/youtube"

	"github.com/alecthomas/kong"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cli cmd.CLI
	kctx := kong.Parse(&cli,
		kong.Name("ytcaptions"),
		kong.Description("Fetch timed captions of YouTube videos."))

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Warn("using default config", slog.Any("error", err))
	}
	if cli.Database != "" {
		cfg.Database = cli.Database
	}

	hc, err := webutil.NewHTTPClient(cfg.Timeout)
	if err != nil {
		fatal("Failed to create HTTP client", err)
	}
	client := &youtube.Client{HTTPClient: hc, BaseURL: cfg.BaseURL, UserAgent: cfg.UserAgent}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	var database *sql.DB
	if kctx.Command() != "fetch <videos>" || !cli.Fetch.NoStore {
		database = openDatabase(cfg.Database)
		defer database.Close()
	}

	// Handle commands
	switch kctx.Command() {
	case "fetch <videos>":
		lang := cli.Fetch.Lang
		if lang == "" {
			lang = cfg.Lang
		}
		for _, v := range cli.Fetch.Videos {
			if webutil.IsURL(v) && !webutil.IsYouTubeURL(v) {
				slog.Warn("not a YouTube URL", slog.String("input", v))
			}
		}

		opts := youtube.Options{Lang: lang, PlainText: cli.Fetch.PlainText}
		results := captionutil.FetchAll(ctx, database, client, cli.Fetch.Videos, opts, cfg.MaxWorkers, limiter)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				slog.Error("Failed to fetch captions", slog.String("input", r.Input), slog.Any("error", r.Err))
				failed++
				continue
			}
			if err := render.Render(os.Stdout, cli.Fetch.Format, title(r.Entry), r.Entry.Segments); err != nil {
				fatal("Failed to render captions", err)
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	case "show":
		entries, err := db.GetAllEntries(database)
		if err != nil {
			fatal("Failed to get entries", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No captions stored in database")
			return
		}
		for _, e := range entries {
			fmt.Printf("[%d] %s (%d segments, %s)\n",
				e.ID, title(&e), e.SegmentCount, e.FetchedAt.Format(time.DateTime))
		}
	case "show <id>":
		e, err := db.GetEntryByID(database, *cli.Show.ID)
		if err != nil {
			fatal(fmt.Sprintf("Failed to get entry with ID %d", *cli.Show.ID), err)
		}
		if e == nil {
			fmt.Fprintf(os.Stderr, "No entry found with ID %d\n", *cli.Show.ID)
			os.Exit(1)
		}
		if err := render.Render(os.Stdout, cli.Show.Format, title(e), e.Segments); err != nil {
			fatal("Failed to render captions", err)
		}
	case "stats":
		stats, err := db.GetDatabaseStats(database)
		if err != nil {
			fatal("Failed to get database stats", err)
		}

		fmt.Printf("Entries: %d\n", stats["entries"])
		fmt.Printf("Videos: %d\n", stats["videos"])
		fmt.Printf("Segments: %d\n", stats["segments"])
		fmt.Printf("Total Text Size: %s\n", formatBytes(stats["total_text_bytes"]))
	case "refetch":
		results, err := captionutil.Refetch(ctx, database, client, cfg.MaxWorkers, limiter)
		if err != nil {
			fatal("Failed to refetch captions", err)
		}

		count := 0
		for _, r := range results {
			if r.Err != nil {
				slog.Error("Failed to refetch captions", slog.String("input", r.Input), slog.Any("error", r.Err))
				continue
			}
			count++
		}
		fmt.Printf("Successfully refetched %d of %d entries\n", count, len(results))
	case "remove <id>":
		if err := db.RemoveEntry(database, cli.Remove.ID); err != nil {
			fatal("Failed to remove entry", err)
		}
		fmt.Printf("Entry %d removed successfully\n", cli.Remove.ID)
	default:
		panic("Unexpected command: " + kctx.Command())
	}
}

func openDatabase(path string) *sql.DB {
	database, isNew, err := db.CreateDB(path)
	if err != nil {
		fatal("Failed to create database", err)
	}
	if err := db.InitDatabase(database); err != nil {
		fatal("Failed to initialize database", err)
	}
	if isNew {
		slog.Debug("created database", slog.String("path", path))
	}
	return database
}

func title(e *db.Entry) string {
	if e.Title == "" {
		return fmt.Sprintf("%s (%s)", e.VideoID, e.Lang)
	}
	return fmt.Sprintf("%s - %s (%s)", e.Title, e.VideoID, e.Lang)
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}

func formatBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	DefaultBaseURL = "https://www.youtube.com"

	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/85.0.4183.83 Safari/537.36,gzip(gfe)"

	// recaptchaMarker shows up on the page served instead of the video when
	// the host rate limits the caller.
	recaptchaMarker = `class="g-recaptcha"`

	maxWatchPageBytes  = 6 * 1024 * 1024
	maxCaptionDocBytes = 2 * 1024 * 1024
)

// ErrResponseTooLarge is returned, wrapped, when a watch page or caption
// document is larger than the client is willing to read.
var ErrResponseTooLarge = errors.New("youtube: response body too large")

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options tune a single GetVideoCaptions call.
type Options struct {
	// Lang selects the caption track by exact language code. Empty picks the
	// first track the page lists.
	Lang string

	// PlainText is accepted for compatibility and currently has no effect.
	PlainText bool
}

// Client fetches captions from the public watch page. The zero value is
// usable and talks to www.youtube.com through http.DefaultClient.
type Client struct {
	HTTPClient Doer
	BaseURL    string
	UserAgent  string
}

var defaultClient = &Client{}

// GetVideoCaptions fetches captions with a zero-value Client.
func GetVideoCaptions(ctx context.Context, videoID string, opts *Options) ([]Segment, error) {
	return defaultClient.GetVideoCaptions(ctx, videoID, opts)
}

// GetVideoCaptions resolves videoID (a raw ID or a URL), scrapes the caption
// manifest from the watch page, picks a track and returns its segments.
// Nothing is retried: the first failing step fails the call.
func (c *Client) GetVideoCaptions(ctx context.Context, videoID string, opts *Options) ([]Segment, error) {
	v, err := c.GetVideo(ctx, videoID, opts)
	if err != nil {
		return nil, err
	}
	return v.Segments, nil
}

// GetVideo is GetVideoCaptions that also reports the selected track and the
// video details found on the watch page.
func (c *Client) GetVideo(ctx context.Context, videoID string, opts *Options) (*Video, error) {
	if opts == nil {
		opts = &Options{}
	}

	id, err := ResolveVideoID(videoID)
	if err != nil {
		return nil, err
	}

	slog.Debug("youtube: fetching watch page", slog.String("id", id))
	page, ok, err := c.get(ctx, c.watchURL(id), opts.Lang, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	if !ok {
		return nil, &CaptionError{Kind: KindVideoNotAvailable, VideoID: id}
	}

	manifest := ExtractManifest(page)
	if manifest == nil {
		if strings.Contains(page, recaptchaMarker) {
			return nil, &CaptionError{Kind: KindRequestLimitExceeded, VideoID: id}
		}
		return nil, &CaptionError{Kind: KindCaptionsDisabled, VideoID: id}
	}

	track, err := SelectTrack(manifest, opts.Lang, id)
	if err != nil {
		return nil, err
	}
	slog.Debug("youtube: selected caption track",
		slog.String("id", id), slog.String("lang", track.LanguageCode), slog.String("kind", track.Kind))

	doc, ok, err := c.get(ctx, track.BaseURL, opts.Lang, maxCaptionDocBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch caption track: %w", err)
	}
	if !ok {
		return nil, &CaptionError{Kind: KindNoCaptionsAvailable, VideoID: id}
	}

	return &Video{
		ID:       id,
		Details:  ExtractVideoDetails(page),
		Track:    track,
		Segments: ParseSegments(doc, track.LanguageCode),
	}, nil
}

func (c *Client) watchURL(id string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/watch?v=" + id
}

// get performs a GET with the client's header policy. ok reports a 2xx
// status; the body is only read when ok is true, and a body over limit
// bytes is an error rather than a truncated read.
func (c *Client) get(ctx context.Context, url, lang string, limit int64) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", false, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return "", false, fmt.Errorf("%w: %s exceeds %d bytes", ErrResponseTooLarge, req.URL.Redacted(), limit)
	}
	return string(body), true, nil
}

package render

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/meain/ytcaptions/internal/youtube"
)

const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatSRT      = "srt"
	FormatMarkdown = "markdown"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatJSON, FormatText, FormatSRT, FormatMarkdown}
}

// Render writes segments to w in the given format. title is only used by
// formats that have a heading.
func Render(w io.Writer, format, title string, segments []youtube.Segment) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, segments)
	case FormatText:
		return renderText(w, segments)
	case FormatSRT:
		return renderSRT(w, segments)
	case FormatMarkdown:
		return renderMarkdown(w, title, segments)
	}
	return fmt.Errorf("unknown format: %s", format)
}

func renderJSON(w io.Writer, segments []youtube.Segment) error {
	if segments == nil {
		segments = []youtube.Segment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(segments); err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	return nil
}

func renderText(w io.Writer, segments []youtube.Segment) error {
	for _, s := range segments {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", Timestamp(s.Offset, '.'), oneLine(s.Text)); err != nil {
			return err
		}
	}
	return nil
}

func renderSRT(w io.Writer, segments []youtube.Segment) error {
	for i, s := range segments {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(s.Offset), srtTimestamp(s.Offset+s.Duration), s.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

func renderMarkdown(w io.Writer, title string, segments []youtube.Segment) error {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "<h1>%s</h1>", html.EscapeString(title))
	}
	sb.WriteString("<ul>")
	for _, s := range segments {
		// Caption text is already markup-escaped.
		fmt.Fprintf(&sb, "<li><strong>%s</strong> %s</li>", Timestamp(s.Offset, '.'), oneLine(s.Text))
	}
	sb.WriteString("</ul>")

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(sb.String())
	if err != nil {
		return fmt.Errorf("convert HTML to markdown: %w", err)
	}

	_, err = fmt.Fprintln(w, strings.TrimSpace(markdown))
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Timestamp formats seconds as mm:ss.mmm, or h:mm:ss.mmm past the hour.
// sep separates seconds from milliseconds.
func Timestamp(seconds float64, sep byte) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "--:--" + string(sep) + "---"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	ms := int64(math.Round(seconds * 1000))
	h, m, s, rest := ms/3600000, ms/60000%60, ms/1000%60, ms%1000
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d%c%03d", sign, h, m, s, sep, rest)
	}
	return fmt.Sprintf("%s%02d:%02d%c%03d", sign, m, s, sep, rest)
}

func srtTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

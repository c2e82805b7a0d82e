package youtube

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Segment is one timed line of a caption track. Text is kept exactly as it
// appears in the caption document, entity escapes included.
type Segment struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
	Offset   float64 `json:"offset"`
	Lang     string  `json:"lang"`
}

var (
	captionTextRE = regexp.MustCompile(`<text start="([^"]*)" dur="([^"]*)">([^<]*)</text>`)
	decimalRE     = regexp.MustCompile(`^\s*[+-]?(?:Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)
)

// ParseSegments extracts every <text start="" dur=""> element of a timedtext
// document in document order and tags each segment with lang. A document
// without such elements yields an empty slice.
func ParseSegments(doc, lang string) []Segment {
	matches := captionTextRE.FindAllStringSubmatch(doc, -1)
	segments := make([]Segment, 0, len(matches))
	for _, m := range matches {
		segments = append(segments, Segment{
			Text:     m[3],
			Duration: parseSeconds(m[2]),
			Offset:   parseSeconds(m[1]),
			Lang:     lang,
		})
	}
	return segments
}

// parseSeconds reads the longest decimal prefix of s, so "1.5s" is 1.5.
// Values without any numeric prefix become NaN.
func parseSeconds(s string) float64 {
	num := decimalRE.FindString(s)
	if num == "" {
		return math.NaN()
	}
	// Out of range values come back as ±Inf along with an error.
	f, _ := strconv.ParseFloat(strings.TrimSpace(num), 64)
	return f
}

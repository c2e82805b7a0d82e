package youtube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zooCaptions = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="1.2" dur="2.16">All right, so here we are, in front of the
elephants</text>` +
	`<text start="5.318" dur="2.656">the cool thing about these guys is that they
have really...</text>` +
	`<text start="7.974" dur="4.642">really really long trunks</text>` +
	`<text start="12.616" dur="1.751">and that&amp;#39;s cool</text>` +
	`<text start="14.421" dur="1.312">(baaaaaaaaaaahhh!!)</text>` +
	`<text start="16.881" dur="2">and that&amp;#39;s pretty much all there is to
say</text></transcript>`

func TestParseSegments(t *testing.T) {
	got := ParseSegments(`<text start="1.2" dur="2.16">Hello</text><text start="5.3" dur="2.6">World</text>`, "en")
	assert.Equal(t, []Segment{
		{Text: "Hello", Duration: 2.16, Offset: 1.2, Lang: "en"},
		{Text: "World", Duration: 2.6, Offset: 5.3, Lang: "en"},
	}, got)
}

func TestParseSegmentsKeepsTextVerbatim(t *testing.T) {
	got := ParseSegments(zooCaptions, "en")
	require.Len(t, got, 6)
	assert.Equal(t, Segment{
		Text:     "All right, so here we are, in front of the\nelephants",
		Duration: 2.16,
		Offset:   1.2,
		Lang:     "en",
	}, got[0])
	assert.Equal(t, "and that&amp;#39;s cool", got[3].Text)
	assert.Equal(t, 2.0, got[5].Duration)
	assert.Equal(t, 16.881, got[5].Offset)
	for _, s := range got {
		assert.Equal(t, "en", s.Lang)
	}
}

func TestParseSegmentsEmpty(t *testing.T) {
	for _, doc := range []string{
		"",
		`<?xml version="1.0" encoding="utf-8" ?><transcript></transcript>`,
		`<text dur="1" start="2">attributes reordered</text>`,
		`<text start="1" dur="2">nested <font>markup</font></text>`,
	} {
		got := ParseSegments(doc, "en")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestParseSegmentsDoesNotValidateTimes(t *testing.T) {
	got := ParseSegments(`<text start="9" dur="-1">b</text><text start="3" dur="0">a</text>`, "fr")
	require.Len(t, got, 2)
	assert.Equal(t, 9.0, got[0].Offset)
	assert.Equal(t, -1.0, got[0].Duration)
	assert.Equal(t, 3.0, got[1].Offset)
}

func TestParseSegmentsIdempotent(t *testing.T) {
	assert.Equal(t, ParseSegments(zooCaptions, "en"), ParseSegments(zooCaptions, "en"))
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.2", 1.2},
		{"2", 2},
		{" 3.5", 3.5},
		{"1.5s", 1.5},
		{".25", 0.25},
		{"-4", -4},
		{"1e3", 1000},
		{"7.", 7},
		{"1.2.3", 1.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSeconds(tt.in), tt.in)
	}
	for _, in := range []string{"", "abc", ".", "-"} {
		assert.True(t, math.IsNaN(parseSeconds(in)), in)
	}
	assert.True(t, math.IsInf(parseSeconds("Infinity"), 1))
}

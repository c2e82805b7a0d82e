package render

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/meain/ytcaptions/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var segments = []youtube.Segment{
	{Text: "All right, so here we are, in front of the\nelephants", Duration: 2.16, Offset: 1.2, Lang: "en"},
	{Text: "and that&amp;#39;s cool", Duration: 1.751, Offset: 12.616, Lang: "en"},
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00.000"},
		{1.2, "00:01.200"},
		{12.616, "00:12.616"},
		{61.5, "01:01.500"},
		{3725.25, "1:02:05.250"},
		{-2, "-00:02.000"},
		{math.NaN(), "--:--.---"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Timestamp(tt.in, '.'))
	}
	assert.Equal(t, "00:01,200", Timestamp(1.2, ','))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, "", segments))

	var got []youtube.Segment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, segments, got)
	assert.Contains(t, buf.String(), `"text": "and that&amp;#39;s cool"`)

	buf.Reset()
	require.NoError(t, Render(&buf, FormatJSON, "", nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, "", segments))
	assert.Equal(t,
		"[00:01.200] All right, so here we are, in front of the elephants\n"+
			"[00:12.616] and that&amp;#39;s cool\n",
		buf.String())
}

func TestRenderSRT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatSRT, "", segments))
	assert.Equal(t,
		"1\n00:00:01,200 --> 00:00:03,360\nAll right, so here we are, in front of the\nelephants\n\n"+
			"2\n00:00:12,616 --> 00:00:14,367\nand that&amp;#39;s cool\n\n",
		buf.String())
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatMarkdown, "jNQXAC9IVRw (en)", segments))
	out := buf.String()
	assert.Contains(t, out, "jNQXAC9IVRw (en)")
	assert.Contains(t, out, "**00:01.200**")
	assert.Contains(t, out, "in front of the elephants")
	assert.Contains(t, out, "**00:12.616**")
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, "xml", "", segments))
}

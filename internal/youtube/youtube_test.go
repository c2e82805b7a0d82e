package youtube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoDetails(t *testing.T) {
	d := ExtractVideoDetails(watchPage(`{}`))
	require.NotNil(t, d)
	assert.Equal(t, "jNQXAC9IVRw", d.VideoID)
	assert.Equal(t, "Me at the zoo", d.Title)

	d = ExtractVideoDetails(`"videoDetails":{"title":"a","author":"jawed","lengthSeconds":"19"},"annotations":[]`)
	require.NotNil(t, d)
	assert.Equal(t, VideoDetails{Title: "a", Author: "jawed", LengthSeconds: "19"}, *d)

	assert.Nil(t, ExtractVideoDetails("<html></html>"))
	assert.Nil(t, ExtractVideoDetails(`"videoDetails":{"title":`))
}

func TestGetVideo(t *testing.T) {
	site := newFakeSite(t)

	v, err := site.client().GetVideo(context.Background(), "https://www.youtube.com/embed/jNQXAC9IVRw", &Options{Lang: "de"})
	require.NoError(t, err)
	assert.Equal(t, "jNQXAC9IVRw", v.ID)
	require.NotNil(t, v.Details)
	assert.Equal(t, "Me at the zoo", v.Details.Title)
	assert.Equal(t, "de", v.Track.LanguageCode)
	assert.Equal(t, "asr", v.Track.Kind)
	assert.Len(t, v.Segments, 1)
}

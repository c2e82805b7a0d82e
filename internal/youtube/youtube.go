package youtube

import (
	"encoding/json"
	"strings"
)

// VideoDetails is the part of the player response describing the video.
type VideoDetails struct {
	VideoID       string `json:"videoId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ChannelID     string `json:"channelId"`
	LengthSeconds string `json:"lengthSeconds"`
}

// Video is everything GetVideo learns about a video.
type Video struct {
	ID       string
	Details  *VideoDetails // nil when the page has no videoDetails object
	Track    CaptionTrack
	Segments []Segment
}

// ExtractVideoDetails decodes the videoDetails object of a watch page, or
// returns nil if there is none. Unlike the caption manifest it is decoded up
// to the end of the first JSON value, so whatever follows does not matter.
func ExtractVideoDetails(html string) *VideoDetails {
	const marker = `"videoDetails":`
	idx := strings.Index(html, marker)
	if idx == -1 {
		return nil
	}

	var details VideoDetails
	dec := json.NewDecoder(strings.NewReader(html[idx+len(marker):]))
	if err := dec.Decode(&details); err != nil {
		return nil
	}
	return &details
}

package youtube

import (
	"regexp"
	"unicode/utf8"
)

// VideoIDLength is the length of every YouTube video identifier.
const VideoIDLength = 11

// videoURLRE covers /<segment>/<rest>/ID, /v/ID, /e/ID, /embed/ID, ?v=ID,
// &v=ID and youtu.be/ID.
var videoURLRE = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ResolveVideoID turns a raw video ID or a watch/short/embed URL into a
// video ID. Any input of 11 runes is returned unchanged. \s in videoURLRE
// is ASCII whitespace only, so other Unicode spaces can be part of an ID.
func ResolveVideoID(input string) (string, error) {
	if utf8.RuneCountInString(input) == VideoIDLength {
		return input, nil
	}
	if m := videoURLRE.FindStringSubmatch(input); len(m) == 2 {
		return m[1], nil
	}
	return "", &CaptionError{Kind: KindIdentifier, VideoID: input}
}

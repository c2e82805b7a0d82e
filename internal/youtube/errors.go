package youtube

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why fetching captions failed.
type ErrorKind int

const (
	KindIdentifier ErrorKind = iota + 1
	KindVideoNotAvailable
	KindCaptionsDisabled
	KindNoCaptionsAvailable
	KindLanguageUnavailable
	KindRequestLimitExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindIdentifier:
		return "IdentifierError"
	case KindVideoNotAvailable:
		return "VideoNotAvailable"
	case KindCaptionsDisabled:
		return "CaptionsDisabled"
	case KindNoCaptionsAvailable:
		return "NoCaptionsAvailable"
	case KindLanguageUnavailable:
		return "LanguageUnavailable"
	case KindRequestLimitExceeded:
		return "RequestLimitExceeded"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// CaptionError is returned for every failure the caption pipeline itself
// detects. Use errors.Is against the Err* values to test the kind.
type CaptionError struct {
	Kind    ErrorKind
	VideoID string

	// Set for KindLanguageUnavailable only.
	Lang      string
	Available []string
}

var (
	ErrIdentifier           = &CaptionError{Kind: KindIdentifier}
	ErrVideoNotAvailable    = &CaptionError{Kind: KindVideoNotAvailable}
	ErrCaptionsDisabled     = &CaptionError{Kind: KindCaptionsDisabled}
	ErrNoCaptionsAvailable  = &CaptionError{Kind: KindNoCaptionsAvailable}
	ErrLanguageUnavailable  = &CaptionError{Kind: KindLanguageUnavailable}
	ErrRequestLimitExceeded = &CaptionError{Kind: KindRequestLimitExceeded}
)

func (e *CaptionError) Error() string {
	var msg string
	switch e.Kind {
	case KindIdentifier:
		msg = "unable to retrieve YouTube video ID"
		if e.VideoID != "" {
			msg += fmt.Sprintf(" from %q", e.VideoID)
		}
		return "youtube: " + msg
	case KindVideoNotAvailable:
		msg = "the video is no longer available"
	case KindCaptionsDisabled:
		msg = "captions are disabled for this video"
	case KindNoCaptionsAvailable:
		msg = "no captions are available for this video"
	case KindLanguageUnavailable:
		msg = fmt.Sprintf("no captions available in %s for this video", e.Lang)
	case KindRequestLimitExceeded:
		msg = "YouTube is receiving too many requests from this IP and requires captcha resolution"
	default:
		msg = e.Kind.String()
	}
	if e.VideoID != "" {
		msg += " (" + e.VideoID + ")"
	}
	if e.Kind == KindLanguageUnavailable {
		msg += "; available languages: " + strings.Join(e.Available, ", ")
	}
	return "youtube: " + msg
}

// Is reports whether target is a *CaptionError of the same kind.
func (e *CaptionError) Is(target error) bool {
	t, ok := target.(*CaptionError)
	return ok && t.Kind == e.Kind
}

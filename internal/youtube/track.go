package youtube

// SelectTrack picks the caption track to fetch. With an empty lang the
// first track in manifest order wins; otherwise the language code has to
// match exactly ("en" does not match "en-US").
func SelectTrack(m *Manifest, lang, videoID string) (CaptionTrack, error) {
	if m == nil || len(m.CaptionTracks) == 0 {
		return CaptionTrack{}, &CaptionError{Kind: KindNoCaptionsAvailable, VideoID: videoID}
	}
	if lang == "" {
		return m.CaptionTracks[0], nil
	}
	for _, t := range m.CaptionTracks {
		if t.LanguageCode == lang {
			return t, nil
		}
	}
	return CaptionTrack{}, &CaptionError{
		Kind:      KindLanguageUnavailable,
		VideoID:   videoID,
		Lang:      lang,
		Available: m.Languages(),
	}
}

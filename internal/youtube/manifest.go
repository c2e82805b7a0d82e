package youtube

import (
	"encoding/json"
	"strings"
)

// The watch page is a script-heavy HTML document and not JSON, so the
// caption manifest is cut out of it between these two literals.
const (
	captionsMarker     = `"captions":`
	videoDetailsMarker = `,"videoDetails`
)

// Manifest is the playerCaptionsTracklistRenderer object embedded in a
// watch page.
type Manifest struct {
	CaptionTracks        []CaptionTrack        `json:"captionTracks,omitempty"`
	TranslationLanguages []TranslationLanguage `json:"translationLanguages,omitempty"`
}

// CaptionTrack describes one caption document available for a video.
type CaptionTrack struct {
	BaseURL        string     `json:"baseUrl"`
	LanguageCode   string     `json:"languageCode"`
	Name           SimpleText `json:"name"`
	VssID          string     `json:"vssId,omitempty"`
	Kind           string     `json:"kind,omitempty"` // "asr" = auto-generated
	IsTranslatable bool       `json:"isTranslatable,omitempty"`
}

type TranslationLanguage struct {
	LanguageCode string     `json:"languageCode"`
	LanguageName SimpleText `json:"languageName"`
}

type SimpleText struct {
	SimpleText string `json:"simpleText,omitempty"`
}

// UnmarshalJSON also accepts a bare string.
func (t *SimpleText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.SimpleText = s
		return nil
	}
	var obj struct {
		SimpleText string `json:"simpleText"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	t.SimpleText = obj.SimpleText
	return nil
}

// UnmarshalJSON requires captionTracks to decode. translationLanguages is
// informational and dropped when its shape is unexpected.
func (m *Manifest) UnmarshalJSON(b []byte) error {
	var raw struct {
		CaptionTracks        []CaptionTrack  `json:"captionTracks"`
		TranslationLanguages json.RawMessage `json:"translationLanguages"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = Manifest{
		CaptionTracks:        raw.CaptionTracks,
		TranslationLanguages: decodeLoose[[]TranslationLanguage](raw.TranslationLanguages),
	}
	return nil
}

// UnmarshalJSON requires baseUrl and languageCode to be strings; the other
// fields are left zero when they do not decode.
func (t *CaptionTrack) UnmarshalJSON(b []byte) error {
	var raw struct {
		BaseURL        string          `json:"baseUrl"`
		LanguageCode   string          `json:"languageCode"`
		Name           json.RawMessage `json:"name"`
		VssID          json.RawMessage `json:"vssId"`
		Kind           json.RawMessage `json:"kind"`
		IsTranslatable json.RawMessage `json:"isTranslatable"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = CaptionTrack{
		BaseURL:        raw.BaseURL,
		LanguageCode:   raw.LanguageCode,
		Name:           decodeLoose[SimpleText](raw.Name),
		VssID:          decodeLoose[string](raw.VssID),
		Kind:           decodeLoose[string](raw.Kind),
		IsTranslatable: decodeLoose[bool](raw.IsTranslatable),
	}
	return nil
}

func decodeLoose[T any](raw json.RawMessage) T {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// ExtractManifest returns the caption manifest embedded in a watch page, or
// nil when the page has none. A manifest that is present but cannot be
// decoded is also reported as nil.
func ExtractManifest(html string) *Manifest {
	parts := strings.Split(html, captionsMarker)
	if len(parts) < 2 {
		return nil
	}

	jsonPart := parts[1]
	if end := strings.Index(jsonPart, videoDetailsMarker); end != -1 {
		jsonPart = jsonPart[:end]
	}
	jsonPart = strings.ReplaceAll(jsonPart, "\n", "")

	var captionData struct {
		PlayerCaptionsTracklistRenderer *Manifest `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal([]byte(jsonPart), &captionData); err != nil {
		return nil
	}

	return captionData.PlayerCaptionsTracklistRenderer
}

// Languages lists the language code of every track in manifest order.
func (m *Manifest) Languages() []string {
	langs := make([]string, 0, len(m.CaptionTracks))
	for _, t := range m.CaptionTracks {
		langs = append(langs, t.LanguageCode)
	}
	return langs
}

// Package speech generates SSML markup for spoken prompt lines.
package speech

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Synthesizer renders plain voice lines as SSML documents for the hosting
// channel's speech collaborator.
type Synthesizer struct {
	locale string
}

// NewSynthesizer creates a synthesizer for the given locale (e.g. "en-US").
func NewSynthesizer(locale string) *Synthesizer {
	if locale == "" {
		locale = "en-US"
	}
	return &Synthesizer{locale: locale}
}

// Markup wraps a voice line in an SSML speak element. The text is XML-escaped.
func (s *Synthesizer) Markup(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(text))
	return fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang=%q>%s</speak>`,
		s.locale, b.String(),
	)
}

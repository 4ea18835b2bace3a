package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkup_WrapsText(t *testing.T) {
	s := NewSynthesizer("en-US")
	out := s.Markup("How would your current manager describe you?")
	assert.Contains(t, out, `xml:lang="en-US"`)
	assert.Contains(t, out, "manager describe you?")
	assert.Contains(t, out, "<speak")
}

func TestMarkup_EscapesXML(t *testing.T) {
	s := NewSynthesizer("en-US")
	out := s.Markup("a < b & c")
	assert.Contains(t, out, "a &lt; b &amp; c")
}

func TestMarkup_EmptyText(t *testing.T) {
	s := NewSynthesizer("en-GB")
	assert.Equal(t, "", s.Markup(""))
}

func TestNewSynthesizer_DefaultLocale(t *testing.T) {
	s := NewSynthesizer("")
	assert.Contains(t, s.Markup("hi there"), `xml:lang="en-US"`)
}

// Package render resolves content keys into prompt cards.
package render

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
)

// adaptiveCardContentType is the attachment content type rich clients expect.
const adaptiveCardContentType = "application/vnd.microsoft.card.adaptive"

// CardRenderer loads prompt cards from a directory of JSON files. The two
// MCQ keys resolve per category so each track gets its own question card.
// A missing or unreadable file falls back to a built-in plain card so the
// dialog never dies on a lost asset.
type CardRenderer struct {
	dir string
	log *logging.Logger
}

// NewCardRenderer creates a renderer over the given cards directory.
func NewCardRenderer(dir string, log *logging.Logger) *CardRenderer {
	return &CardRenderer{dir: dir, log: log.Sub("render")}
}

// Render resolves a content key (plus the category track for MCQ prompts)
// into a card.
func (r *CardRenderer) Render(key domain.ContentKey, category domain.Category) (*domain.Card, error) {
	name := cardFile(key, category)

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil || !json.Valid(data) {
		if err != nil {
			r.log.Warn().Err(err).Str("card", name).Msg("card file unavailable, using fallback")
		} else {
			r.log.Warn().Str("card", name).Msg("card file is not valid JSON, using fallback")
		}
		return fallbackCard(key), nil
	}

	return &domain.Card{
		ContentType: adaptiveCardContentType,
		Content:     json.RawMessage(data),
	}, nil
}

// cardFile maps a content key and category to a card file name.
func cardFile(key domain.ContentKey, category domain.Category) string {
	track := "general"
	switch category {
	case domain.CategoryAWS:
		track = "aws"
	case domain.CategoryAzure:
		track = "azure"
	}

	switch key {
	case domain.KeyT1:
		return track + "1.json"
	case domain.KeyT2:
		return track + "2.json"
	default:
		return string(key) + ".json"
	}
}

// fallbackText is the plain wording used when a card file is missing.
var fallbackText = map[domain.ContentKey]string{
	domain.KeyWelcome: "Welcome to the interview. Type 'proceed' to begin.",
	domain.KeyLogin:   "Please enter your registered mobile number and token.",
	domain.KeyHR1:     "Why are you leaving your current job? Explain in one line.",
	domain.KeyHR2:     "How would your current manager describe you?",
	domain.KeyT1:      "Technical question 1: reply with the full correct option.",
	domain.KeyT2:      "Technical question 2: reply with the full correct option.",
	domain.KeyThanks:  "Thank you, the interview is over.",
}

// fallbackCard builds a minimal text card for a content key.
func fallbackCard(key domain.ContentKey) *domain.Card {
	text, ok := fallbackText[key]
	if !ok {
		text = string(key)
	}
	content, _ := json.Marshal(map[string]any{
		"type":    "AdaptiveCard",
		"version": "1.0",
		"body": []map[string]any{
			{"type": "TextBlock", "text": text, "wrap": true},
		},
	})
	return &domain.Card{
		ContentType: adaptiveCardContentType,
		Content:     content,
	}
}

// Verify checks that every card the script can request resolves to a file
// in the renderer's directory. Missing files are returned, not fatal.
func (r *CardRenderer) Verify() []string {
	var missing []string
	seen := map[string]bool{}
	for _, key := range []domain.ContentKey{domain.KeyWelcome, domain.KeyLogin, domain.KeyHR1, domain.KeyHR2, domain.KeyT1, domain.KeyT2, domain.KeyThanks} {
		for _, cat := range []domain.Category{domain.CategoryAWS, domain.CategoryAzure, domain.CategoryGeneral} {
			name := cardFile(key, cat)
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, err := os.Stat(filepath.Join(r.dir, name)); err != nil {
				missing = append(missing, name)
			}
		}
	}
	return missing
}

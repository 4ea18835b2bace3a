// Package evaluate scores interview answers against per-category rules.
package evaluate

import (
	"strings"
	"unicode/utf8"

	"github.com/rnlabs/finbot/internal/domain"
)

// Free-text answers pass when their lower-cased length falls strictly inside
// this interval. A coarse proxy for answer quality, carried over from the
// interview rubric rather than any semantic check.
const (
	minFreeTextLen = 12
	maxFreeTextLen = 25
)

// Evaluate scores one answer. It is pure and deterministic: the same
// (text, category, step) always yields the same verdict.
//
// HR1 and HR2 are free-text steps scored by length alone; T1 and T2 are
// multiple-choice steps scored by keyword match against the set for the
// (category, step) pair. Unknown steps fail.
func Evaluate(text string, category domain.Category, step domain.StepLabel) domain.Verdict {
	lowered := strings.ToLower(text)

	switch step {
	case domain.LabelHR1, domain.LabelHR2:
		// Character count, not bytes: accented answers must not be
		// penalized for their UTF-8 encoding width.
		if n := utf8.RuneCountInString(lowered); n > minFreeTextLen && n < maxFreeTextLen {
			return domain.VerdictPass
		}
		return domain.VerdictFail
	case domain.LabelT1, domain.LabelT2:
		return matchKeywords(lowered, category, step)
	default:
		return domain.VerdictFail
	}
}

// matchKeywords passes the answer if it contains any accepted keyword for
// the (category, step) pair.
func matchKeywords(lowered string, category domain.Category, step domain.StepLabel) domain.Verdict {
	for _, kw := range keywordsFor(category, step) {
		if strings.Contains(lowered, kw) {
			return domain.VerdictPass
		}
	}
	return domain.VerdictFail
}

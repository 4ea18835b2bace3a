package evaluate

import (
	"strings"
	"testing"

	"github.com/rnlabs/finbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_FreeTextLength(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Verdict
	}{
		{"too short", strings.Repeat("a", 12), domain.VerdictFail},
		{"lower bound exclusive", strings.Repeat("a", 13), domain.VerdictPass},
		{"upper bound exclusive", strings.Repeat("a", 24), domain.VerdictPass},
		{"at upper bound", strings.Repeat("a", 25), domain.VerdictFail},
		{"way too long", strings.Repeat("a", 41), domain.VerdictFail},
		{"empty", "", domain.VerdictFail},
		// 23 characters but 26 bytes: length is counted in characters.
		{"accented within bounds", "métier méconnu respecté", domain.VerdictPass},
		{"accented too long", strings.Repeat("é", 25), domain.VerdictFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.text, domain.CategoryAWS, domain.LabelHR1))
			// HR2 uses the same heuristic.
			assert.Equal(t, tt.want, Evaluate(tt.text, domain.CategoryAzure, domain.LabelHR2))
		})
	}
}

func TestEvaluate_FreeTextIgnoresCategory(t *testing.T) {
	text := "a reasonable answer"
	for _, cat := range []domain.Category{domain.CategoryAWS, domain.CategoryAzure, domain.CategoryGeneral, domain.CategoryUnresolved} {
		assert.Equal(t, domain.VerdictPass, Evaluate(text, cat, domain.LabelHR1))
	}
}

func TestEvaluate_MCQKeywords(t *testing.T) {
	tests := []struct {
		category domain.Category
		step     domain.StepLabel
		text     string
		want     domain.Verdict
	}{
		{domain.CategoryAWS, domain.LabelT1, "A. Amazon Elastic Compute Cloud", domain.VerdictPass},
		{domain.CategoryAWS, domain.LabelT1, "option c storage", domain.VerdictFail},
		{domain.CategoryAWS, domain.LabelT2, "B. Auto Scaling", domain.VerdictPass},
		{domain.CategoryAWS, domain.LabelT2, "load balancing", domain.VerdictFail},
		{domain.CategoryAzure, domain.LabelT1, "azure resource manager", domain.VerdictPass},
		{domain.CategoryAzure, domain.LabelT1, "blob storage", domain.VerdictFail},
		{domain.CategoryAzure, domain.LabelT2, "A. Compute", domain.VerdictPass},
		{domain.CategoryAzure, domain.LabelT2, "b. networking", domain.VerdictFail},
		{domain.CategoryGeneral, domain.LabelT1, "d. top level", domain.VerdictPass},
		{domain.CategoryGeneral, domain.LabelT1, "middle management", domain.VerdictFail},
		{domain.CategoryGeneral, domain.LabelT2, "writing skills", domain.VerdictPass},
		{domain.CategoryGeneral, domain.LabelT2, "b. organising", domain.VerdictFail},
	}

	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+string(tt.step), func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.text, tt.category, tt.step))
		})
	}
}

func TestEvaluate_UnknownCategoryUsesGeneralTrack(t *testing.T) {
	assert.Equal(t, domain.VerdictPass, Evaluate("top level", domain.Category("finance"), domain.LabelT1))
	assert.Equal(t, domain.VerdictFail, Evaluate("elastic compute", domain.Category("finance"), domain.LabelT1))
}

func TestEvaluate_UnknownStepFails(t *testing.T) {
	assert.Equal(t, domain.VerdictFail, Evaluate("anything at all here", domain.CategoryAWS, domain.StepLabel("T3")))
}

func TestEvaluate_Pure(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, domain.VerdictPass, Evaluate("Auto Scaling", domain.CategoryAWS, domain.LabelT2))
	}
}

func TestKeywordTable_Exhaustive(t *testing.T) {
	// Three categories by two MCQ steps, each set non-empty.
	assert.Len(t, mcqKeywords, 6)
	for key, kws := range mcqKeywords {
		assert.NotEmpty(t, kws, "keywords for %v", key)
	}
}

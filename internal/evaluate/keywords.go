package evaluate

import "github.com/rnlabs/finbot/internal/domain"

// mcqKey addresses one multiple-choice keyword set.
type mcqKey struct {
	category domain.Category
	step     domain.StepLabel
}

// mcqKeywords enumerates the accepted answer substrings for every
// (category, step) pair. Participants in categories outside aws/azure score
// against the general track.
var mcqKeywords = map[mcqKey][]string{
	{domain.CategoryAWS, domain.LabelT1}:     {"a. amazon", "compute", "cloud", "elastic"},
	{domain.CategoryAWS, domain.LabelT2}:     {"b. auto", "auto scaling", "scaling"},
	{domain.CategoryAzure, domain.LabelT1}:   {"a. azure", "resource", "manager"},
	{domain.CategoryAzure, domain.LabelT2}:   {"a. compute", "compute"},
	{domain.CategoryGeneral, domain.LabelT1}: {"d. top", "top", "top level"},
	{domain.CategoryGeneral, domain.LabelT2}: {"d. writing", "writing", "writing skills"},
}

// keywordsFor returns the keyword set for a (category, step) pair, falling
// back to the general track for unrecognized categories.
func keywordsFor(category domain.Category, step domain.StepLabel) []string {
	switch category {
	case domain.CategoryAWS, domain.CategoryAzure:
	default:
		category = domain.CategoryGeneral
	}
	return mcqKeywords[mcqKey{category, step}]
}

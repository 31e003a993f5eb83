package dataprocessing

import (
	"strings"

	"campaignlens/pkg/contracts/domain"
)

// categoryRule maps a name keyword to its group label. Rules are evaluated
// in order and the first match wins regardless of where the keyword sits in
// the name, so "Black Friday Wednesday Special" is a Wednesday Campaign.
type categoryRule struct {
	keyword string
	label   domain.GroupLabel
}

// Matching is deliberately substring, not whole-word: a campaign named
// "Mondayish" lands in Monday Campaign. This mirrors how the source data
// has always been grouped; do not tighten to word boundaries.
var categoryRules = []categoryRule{
	{"wednesday", domain.GroupWednesday},
	{"friday", domain.GroupFriday},
	{"monday", domain.GroupMonday},
	{"monthly", domain.GroupMonthly},
}

// Categorize assigns a campaign group from the campaign name. It is total:
// every string, including the empty one, maps to exactly one label.
func Categorize(name string) domain.GroupLabel {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.label
		}
	}
	return domain.GroupOther
}

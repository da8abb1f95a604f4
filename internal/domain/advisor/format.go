package advisor

import "strings"

// Format renders the advisory as a single display block. Categories appear in
// fixed order, each non-empty category gets a heading line followed by one
// entry per line, with a blank line between rendered sections. Empty
// categories are omitted entirely; an all-empty advisory renders as "".
func Format(advisory Advisory) string {
	sections := []struct {
		heading string
		entries []string
	}{
		{"Health Recommendations:", advisory.HealthAdvice},
		{"Activity Recommendations:", advisory.Activities},
		{"Food & Hydration Advice:", advisory.FoodSuggestions},
		{"General Advice:", advisory.GeneralAdvice},
	}

	blocks := make([]string, 0, len(sections))
	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}
		blocks = append(blocks, section.heading+"\n"+strings.Join(section.entries, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

package estimate

import "strings"

// priorityTier pairs a tier with the keywords that select it.
type priorityTier struct {
	priority Priority
	keywords []string
}

// priorityTiers is checked in order; the first tier containing a matching
// keyword wins, so a name matching both "cleaning" and "fringe" is high.
var priorityTiers = []priorityTier{
	{PriorityHigh, []string{
		"cleaning", "wash", "stain removal", "repair", "reweaving",
		"hole", "tear", "foundation", "dry rot", "soaking",
	}},
	{PriorityMedium, []string{
		"binding", "overcast", "fringe", "edge", "selvedge",
		"blocking", "stretching", "shearing", "zenjireh",
	}},
	{PriorityLow, []string{
		"protection", "moth proof", "padding", "fiber protect",
		"scotchgard", "storage",
	}},
}

// ClassifyPriority assigns a priority tier to a service name by ordered
// keyword lookup. Names matching no tier default to medium.
func ClassifyPriority(name string) Priority {
	lower := strings.ToLower(name)
	for _, tier := range priorityTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(lower, kw) {
				return tier.priority
			}
		}
	}
	return PriorityMedium
}

package directory

import "strings"

// summarize joins provider details with profile and category-label maps into
// display summaries. Missing joins degrade to defaults; they are never
// surfaced as errors.
func summarize(details []Details, profiles map[string]Profile, labels map[string][]string) []Summary {
	out := make([]Summary, len(details))
	for i, d := range details {
		p := profiles[d.UserID]
		out[i] = Summary{
			ID:            d.UserID,
			Name:          displayName(profiles, d.UserID),
			Phone:         p.Phone,
			CategoryLabel: categoryLabel(labels[d.UserID]),
			DistanceLabel: distanceLabel(d),
			Description:   description(d),
			Available:     d.available(),
		}
	}
	return out
}

// displayName resolves a provider's name, substituting a placeholder when the
// profile join misses rather than failing.
func displayName(profiles map[string]Profile, userID string) string {
	if p, ok := profiles[userID]; ok && p.FullName != "" {
		return p.FullName
	}
	return unknownName
}

// categoryLabel comma-joins declared category names. A provider with no
// declared categories renders as "General", never as an empty string.
func categoryLabel(names []string) string {
	kept := names[:0:0]
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return generalLabel
	}
	return strings.Join(kept, ", ")
}

func distanceLabel(d Details) string {
	if d.hasLocation() {
		return distanceNearby
	}
	return distanceUnknown
}

func description(d Details) string {
	if d.Description == "" {
		return noDescription
	}
	return d.Description
}

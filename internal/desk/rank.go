package desk

import (
	"sort"
	"strings"
)

// urgencyRank gives high the lowest value so it sorts first.
var urgencyRank = map[Urgency]int{
	UrgencyHigh:   0,
	UrgencyMedium: 1,
	UrgencyLow:    2,
}

// Rank filters and orders the triage queue for agent work order.
//
// A message survives the filter when its content, customer name, or
// customer email contains query case-insensitively (empty query keeps
// everything), and its status equals status (StatusAll keeps every
// status). Survivors are ordered by urgency tier (high, medium, low)
// with newest-first creation time as tie-break. The input slice is not
// modified. Pure and safe for concurrent use.
func Rank(messages []*Message, query string, status Status) []*Message {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]*Message, 0, len(messages))
	for _, m := range messages {
		if status != StatusAll && m.Status != status {
			continue
		}
		if q != "" && !matchesQuery(m, q) {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := tierRank(out[i].Urgency), tierRank(out[j].Urgency)
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

func matchesQuery(m *Message, q string) bool {
	if strings.Contains(strings.ToLower(m.Content), q) {
		return true
	}
	if m.Customer == nil {
		return false
	}
	return strings.Contains(strings.ToLower(m.Customer.Name), q) ||
		strings.Contains(strings.ToLower(m.Customer.Email), q)
}

// tierRank places unknown tiers after low rather than panicking on
// rows written by older schema versions.
func tierRank(u Urgency) int {
	if r, ok := urgencyRank[u]; ok {
		return r
	}
	return len(urgencyRank)
}

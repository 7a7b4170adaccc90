// Package urgency classifies message text into a triage tier. The
// classifier is a total, deterministic function over keyword sets:
// any escalation keyword wins high, otherwise any informational
// keyword yields low, otherwise medium. Matching is case-insensitive
// substring. The keyword sets are configuration, not behavior baked
// into callers; see DefaultHighKeywords and DefaultLowKeywords.
package urgency

import (
	"strings"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

// DefaultHighKeywords trigger the high tier. Escalation and
// outage/complaint language.
var DefaultHighKeywords = []string{
	"urgent",
	"asap",
	"immediately",
	"emergency",
	"critical",
	"broken",
	"not working",
	"down",
	"outage",
	"refund",
	"cancel",
	"unacceptable",
	"complaint",
	"angry",
}

// DefaultLowKeywords trigger the low tier when no high keyword is
// present. Informational and courtesy language.
var DefaultLowKeywords = []string{
	"thank",
	"thanks",
	"feedback",
	"suggestion",
	"wondering",
	"curious",
	"question about",
	"just checking",
	"great",
	"love",
}

// Classifier maps message text to a tier. The zero value classifies
// everything as medium; use New or Default for keyword matching.
type Classifier struct {
	high []string
	low  []string
}

// Default returns a classifier with the default keyword sets.
func Default() *Classifier {
	return New(DefaultHighKeywords, DefaultLowKeywords)
}

// New builds a classifier from explicit keyword sets. Keywords are
// lower-cased once here so Classify stays allocation-light per call.
func New(high, low []string) *Classifier {
	c := &Classifier{
		high: make([]string, len(high)),
		low:  make([]string, len(low)),
	}
	for i, k := range high {
		c.high[i] = strings.ToLower(k)
	}
	for i, k := range low {
		c.low[i] = strings.ToLower(k)
	}
	return c
}

// Classify returns the urgency tier for text. Total and deterministic:
// defined for any string including empty, no I/O, same input always
// yields the same tier. High keywords take precedence over low ones.
func (c *Classifier) Classify(text string) desk.Urgency {
	t := strings.ToLower(text)
	for _, k := range c.high {
		if strings.Contains(t, k) {
			return desk.UrgencyHigh
		}
	}
	for _, k := range c.low {
		if strings.Contains(t, k) {
			return desk.UrgencyLow
		}
	}
	return desk.UrgencyMedium
}

package urgency

import (
	"testing"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

func TestClassify_Defaults(t *testing.T) {
	t.Parallel()

	c := Default()

	tests := []struct {
		name string
		text string
		want desk.Urgency
	}{
		{"escalation keyword", "This is URGENT, please respond", desk.UrgencyHigh},
		{"outage keyword", "The site has been down all morning", desk.UrgencyHigh},
		{"refund keyword", "I want a refund for my last order", desk.UrgencyHigh},
		{"keyword inside word", "my payment was canceled", desk.UrgencyHigh},
		{"courtesy keyword", "Thanks for the great support", desk.UrgencyLow},
		{"feedback keyword", "Just some feedback on the new layout", desk.UrgencyLow},
		{"multiword low keyword", "I have a question about pricing", desk.UrgencyLow},
		{"no keywords", "Please update my shipping address", desk.UrgencyMedium},
		{"empty text", "", desk.UrgencyMedium},
		{"mixed case", "BrOkEn checkout page", desk.UrgencyHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_HighBeatsLow(t *testing.T) {
	t.Parallel()

	c := Default()

	// Contains both "thanks" (low) and "urgent" (high). High wins
	// regardless of keyword position.
	got := c.Classify("Thanks in advance but this is urgent")
	if got != desk.UrgencyHigh {
		t.Errorf("Classify = %q, want %q", got, desk.UrgencyHigh)
	}
}

func TestClassify_CustomKeywords(t *testing.T) {
	t.Parallel()

	c := New([]string{"SEV1"}, []string{"fyi"})

	if got := c.Classify("sev1 incident in checkout"); got != desk.UrgencyHigh {
		t.Errorf("custom high keyword: got %q", got)
	}
	if got := c.Classify("FYI the docs link moved"); got != desk.UrgencyLow {
		t.Errorf("custom low keyword: got %q", got)
	}
	// Default keywords no longer apply once overridden.
	if got := c.Classify("this is urgent"); got != desk.UrgencyMedium {
		t.Errorf("default keyword after override: got %q", got)
	}
}

func TestClassify_ZeroValue(t *testing.T) {
	t.Parallel()

	var c Classifier
	if got := c.Classify("urgent outage, everything broken"); got != desk.UrgencyMedium {
		t.Errorf("zero-value Classify = %q, want %q", got, desk.UrgencyMedium)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	c := Default()
	const text = "wondering about my order, it might be broken"

	first := c.Classify(text)
	for i := 0; i < 100; i++ {
		if got := c.Classify(text); got != first {
			t.Fatalf("call %d: Classify = %q, first call = %q", i, got, first)
		}
	}
}

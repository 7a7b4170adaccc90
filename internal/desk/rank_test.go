package desk

import (
	"testing"
	"time"
)

func rankFixture() []*Message {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*Message{
		{
			ID: "m1", Content: "site is down", Urgency: UrgencyHigh, Status: StatusNew,
			CreatedAt: base,
			Customer:  &Customer{Name: "Alice Park", Email: "alice@example.com"},
		},
		{
			ID: "m2", Content: "question about billing", Urgency: UrgencyLow, Status: StatusNew,
			CreatedAt: base.Add(1 * time.Minute),
			Customer:  &Customer{Name: "Bob Lee", Email: "bob@example.com"},
		},
		{
			ID: "m3", Content: "update my address", Urgency: UrgencyMedium, Status: StatusInProgress,
			CreatedAt: base.Add(2 * time.Minute),
			Customer:  &Customer{Name: "Carol King", Email: "carol@example.com"},
		},
		{
			ID: "m4", Content: "URGENT refund needed", Urgency: UrgencyHigh, Status: StatusNew,
			CreatedAt: base.Add(3 * time.Minute),
			Customer:  &Customer{Name: "Dave Moon", Email: "dave@example.com"},
		},
		{
			ID: "m5", Content: "all sorted, thanks", Urgency: UrgencyLow, Status: StatusResolved,
			CreatedAt: base.Add(4 * time.Minute),
			Customer:  &Customer{Name: "Alice Park", Email: "alice@example.com"},
		},
	}
}

func ids(msgs []*Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func assertOrder(t *testing.T, got []*Message, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %v, want %v", i, ids(got), want)
		}
	}
}

func TestRank_OrdersByUrgencyThenRecency(t *testing.T) {
	t.Parallel()

	got := Rank(rankFixture(), "", StatusAll)

	// High tier first, and within a tier newer messages first.
	assertOrder(t, got, "m4", "m1", "m3", "m5", "m2")
}

func TestRank_StatusFilter(t *testing.T) {
	t.Parallel()

	msgs := rankFixture()

	assertOrder(t, Rank(msgs, "", StatusNew), "m4", "m1", "m2")
	assertOrder(t, Rank(msgs, "", StatusInProgress), "m3")
	assertOrder(t, Rank(msgs, "", StatusResolved), "m5")
}

func TestRank_QueryFilter(t *testing.T) {
	t.Parallel()

	msgs := rankFixture()

	// Content match, case-insensitive.
	assertOrder(t, Rank(msgs, "REFUND", StatusAll), "m4")
	// Customer name match.
	assertOrder(t, Rank(msgs, "alice", StatusAll), "m1", "m5")
	// Customer email match.
	assertOrder(t, Rank(msgs, "bob@example", StatusAll), "m2")
	// Query and status combine.
	assertOrder(t, Rank(msgs, "alice", StatusNew), "m1")
	// Surrounding whitespace is ignored.
	assertOrder(t, Rank(msgs, "  refund  ", StatusAll), "m4")
}

func TestRank_NoMatches(t *testing.T) {
	t.Parallel()

	got := Rank(rankFixture(), "nonexistent", StatusAll)
	if len(got) != 0 {
		t.Errorf("got %v, want empty", ids(got))
	}
}

func TestRank_NilCustomer(t *testing.T) {
	t.Parallel()

	msgs := []*Message{
		{ID: "m1", Content: "hello", Urgency: UrgencyMedium, Status: StatusNew},
	}

	// A query that only matches customer fields must not panic on a
	// message with no customer joined.
	if got := Rank(msgs, "alice", StatusAll); len(got) != 0 {
		t.Errorf("got %v, want empty", ids(got))
	}
	assertOrder(t, Rank(msgs, "hello", StatusAll), "m1")
}

func TestRank_UnknownUrgencySortsLast(t *testing.T) {
	t.Parallel()

	base := time.Now()
	msgs := []*Message{
		{ID: "m1", Urgency: Urgency("mystery"), Status: StatusNew, CreatedAt: base.Add(time.Hour)},
		{ID: "m2", Urgency: UrgencyLow, Status: StatusNew, CreatedAt: base},
	}

	assertOrder(t, Rank(msgs, "", StatusAll), "m2", "m1")
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	msgs := rankFixture()
	before := ids(msgs)

	Rank(msgs, "", StatusAll)

	for i, m := range msgs {
		if m.ID != before[i] {
			t.Fatalf("input reordered: %v", ids(msgs))
		}
	}
}

func TestRank_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := Rank(nil, "", StatusAll); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}
}

package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/linnemanlabs/frontdesk/internal/desk"
	"github.com/linnemanlabs/frontdesk/internal/desk/memstore"
	"github.com/linnemanlabs/frontdesk/internal/urgency"
)

func newTestImporter(store desk.Store) *Importer {
	svc := desk.NewService(store, nil, nil, nil, nil)
	return NewImporter(svc, urgency.Default(), nil, nil)
}

func TestRun_ImportsRows(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	imp := newTestImporter(store)

	csv := `Name,Email,Phone,Message
John Smith,john@example.com,555-0100,The checkout page is broken
Jane Doe,jane@example.com,,Thanks for the quick fix last week
Bob Lee,,,Please update my shipping address`

	report, err := imp.Run(context.Background(), csv)
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if report.Imported != 3 || report.Considered != 3 || len(report.Skipped) != 0 {
		t.Fatalf("report = %+v, want 3 imported, 3 considered, 0 skipped", report)
	}

	msgs, err := store.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("stored messages = %d, want 3", len(msgs))
	}

	byContent := make(map[string]*desk.Message, len(msgs))
	for _, m := range msgs {
		byContent[m.Content] = m
		if m.Status != desk.StatusNew {
			t.Errorf("message %q status = %q, want new", m.Content, m.Status)
		}
	}

	if got := byContent["The checkout page is broken"].Urgency; got != desk.UrgencyHigh {
		t.Errorf("broken checkout urgency = %q, want high", got)
	}
	if got := byContent["Thanks for the quick fix last week"].Urgency; got != desk.UrgencyLow {
		t.Errorf("thanks urgency = %q, want low", got)
	}
	if got := byContent["Please update my shipping address"].Urgency; got != desk.UrgencyMedium {
		t.Errorf("neutral urgency = %q, want medium", got)
	}

	// Contact info lands on the created customer.
	john, ok, err := store.FindCustomerByName(context.Background(), "John Smith")
	if err != nil || !ok {
		t.Fatalf("FindCustomerByName = %v, %v", ok, err)
	}
	if john.Email != "john@example.com" || john.Phone != "555-0100" {
		t.Errorf("customer contact = %q/%q, want john@example.com/555-0100", john.Email, john.Phone)
	}
}

func TestRun_RejectsTooShort(t *testing.T) {
	t.Parallel()

	imp := newTestImporter(memstore.New())

	for _, text := range []string{"", "name,message", "name,message\n\n  \n"} {
		report, err := imp.Run(context.Background(), text)
		if !errors.Is(err, ErrTooShort) {
			t.Errorf("Run(%q) err = %v, want ErrTooShort", text, err)
		}
		if report != nil {
			t.Errorf("Run(%q) report = %+v, want nil", text, report)
		}
	}
}

func TestRun_RejectsMissingColumns(t *testing.T) {
	t.Parallel()

	imp := newTestImporter(memstore.New())

	tests := []struct {
		name string
		text string
	}{
		{"no name column", "email,message\njohn@x.com,Hello"},
		{"no message column", "name,email\nJohn,john@x.com"},
		{"neither column", "id,created_at\n1,2026-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := imp.Run(context.Background(), tt.text)
			if !errors.Is(err, ErrMissingColumns) {
				t.Errorf("Run err = %v, want ErrMissingColumns", err)
			}
		})
	}
}

func TestRun_SkipsInvalidRows(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	imp := newTestImporter(store)

	// Row 3 has an empty message, row 4 is short of the message column.
	csv := "name,message\nJohn,Hello there\nJane,\nShort\nBob,Need help"

	report, err := imp.Run(context.Background(), csv)
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if report.Imported != 2 || report.Considered != 4 {
		t.Fatalf("report = %+v, want 2 imported of 4 considered", report)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("skipped = %+v, want 2 entries", report.Skipped)
	}
	if report.Skipped[0].Line != 3 || report.Skipped[0].Reason != "missing name or message" {
		t.Errorf("skipped[0] = %+v", report.Skipped[0])
	}
	if report.Skipped[1].Line != 4 || report.Skipped[1].Reason != "row has fewer fields than required columns" {
		t.Errorf("skipped[1] = %+v", report.Skipped[1])
	}
}

func TestRun_DuplicateNameSharesCustomer(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	imp := newTestImporter(store)

	csv := `name,email,message
John Smith,john@example.com,First inquiry
John Smith,different@example.com,Second inquiry`

	report, err := imp.Run(context.Background(), csv)
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if report.Imported != 2 {
		t.Fatalf("imported = %d, want 2", report.Imported)
	}

	msgs, _ := store.ListMessages(context.Background())
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[0].CustomerID != msgs[1].CustomerID {
		t.Errorf("messages reference different customers: %s vs %s", msgs[0].CustomerID, msgs[1].CustomerID)
	}

	// First writer wins: the second row's email is ignored.
	c, ok, err := store.FindCustomerByName(context.Background(), "John Smith")
	if err != nil || !ok {
		t.Fatalf("FindCustomerByName = %v, %v", ok, err)
	}
	if c.Email != "john@example.com" {
		t.Errorf("email = %q, want first row's email", c.Email)
	}
}

func TestRun_ReusesExistingCustomer(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	existing := &desk.Customer{ID: "cust-1", Name: "Jane Doe", Email: "jane@example.com"}
	if err := store.CreateCustomer(context.Background(), existing); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	imp := newTestImporter(store)
	_, err := imp.Run(context.Background(), "name,message\nJane Doe,Hello again")
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	msgs, _ := store.ListMessages(context.Background())
	if len(msgs) != 1 || msgs[0].CustomerID != "cust-1" {
		t.Fatalf("message customer = %v, want existing cust-1", msgs)
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	t.Parallel()

	imp := newTestImporter(memstore.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := imp.Run(ctx, "name,message\nJohn,Hello\nJane,Hi")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	// Partial report is still returned.
	if report == nil || report.Imported != 0 {
		t.Errorf("report = %+v, want empty partial report", report)
	}
}

// failingStore delegates to a real store but fails message writes.
type failingStore struct {
	desk.Store
}

func (f *failingStore) CreateMessage(ctx context.Context, m *desk.Message) error {
	return errors.New("disk full")
}

func TestRun_MessageWriteFailureSkipsRow(t *testing.T) {
	t.Parallel()

	imp := newTestImporter(&failingStore{Store: memstore.New()})

	report, err := imp.Run(context.Background(), "name,message\nJohn,Hello\nJane,Hi")
	if err != nil {
		t.Fatalf("Run() = %v, want nil (row failures do not abort the run)", err)
	}
	if report.Imported != 0 || report.Considered != 2 || len(report.Skipped) != 2 {
		t.Fatalf("report = %+v, want all rows skipped", report)
	}
	for _, s := range report.Skipped {
		if s.Reason != "message creation failed" {
			t.Errorf("skip reason = %q, want message creation failed", s.Reason)
		}
	}
}

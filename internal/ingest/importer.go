package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

// Configuration errors abort an import before any row is processed.
var (
	ErrTooShort       = errors.New("CSV file must contain at least a header row and one data row")
	ErrMissingColumns = errors.New(`CSV must contain at least "name" and "message" columns`)
)

// Classifier assigns an urgency tier to message text. Implementations
// must be deterministic and must not perform I/O; Run calls it inline
// for every row.
type Classifier interface {
	Classify(text string) desk.Urgency
}

// SkippedRow records why a data row was not imported. Line is
// 1-based over non-empty lines, counting the header as line 1.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Report is the outcome of an import run.
type Report struct {
	Imported   int          `json:"imported"`
	Considered int          `json:"considered"`
	Skipped    []SkippedRow `json:"skipped,omitempty"`
}

// Importer drives the CSV ingestion pipeline: tokenize, map columns,
// resolve customers, classify urgency, create messages.
type Importer struct {
	svc      *desk.Service
	classify Classifier
	logger   log.Logger
	metrics  *desk.Metrics
}

// NewImporter creates an importer. metrics may be nil.
func NewImporter(svc *desk.Service, classify Classifier, logger log.Logger, metrics *desk.Metrics) *Importer {
	if logger == nil {
		logger = log.Nop()
	}
	return &Importer{
		svc:      svc,
		classify: classify,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run imports messages from raw CSV text.
//
// It fails fast with ErrTooShort or ErrMissingColumns before touching
// the store. Data rows are processed strictly sequentially so that a
// customer created for an earlier row is visible to later rows; a
// per-run name cache avoids re-querying names this run already
// resolved. Row-local failures (short row, empty required field,
// store write error) skip the row and continue. Cancellation is
// honored between rows, never mid-row: the partial report is returned
// alongside ctx.Err().
func (imp *Importer) Run(ctx context.Context, rawText string) (*Report, error) {
	start := time.Now()

	report, err := imp.run(ctx, rawText)

	if imp.metrics != nil {
		result := "ok"
		switch {
		case errors.Is(err, ErrTooShort), errors.Is(err, ErrMissingColumns):
			result = "config_error"
		case err != nil:
			result = "canceled"
		}
		imp.metrics.ImportsTotal.WithLabelValues(result).Inc()
		imp.metrics.ImportDuration.Observe(time.Since(start).Seconds())
	}

	return report, err
}

func (imp *Importer) run(ctx context.Context, rawText string) (*Report, error) {
	rows := ParseCSV(rawText)
	if len(rows) < 2 {
		return nil, ErrTooShort
	}

	cols := MapColumns(rows[0])
	if !cols.HasRequired() {
		return nil, ErrMissingColumns
	}

	report := &Report{}

	// name -> customer ID, scoped to this run
	resolved := make(map[string]string)

	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		line := i + 2 // header is line 1
		report.Considered++

		if len(row) < cols.minFields() {
			imp.skip(report, line, "row has fewer fields than required columns")
			continue
		}

		name := fieldAt(row, cols.Name)
		content := fieldAt(row, cols.Message)
		if name == "" || content == "" {
			imp.skip(report, line, "missing name or message")
			continue
		}

		customerID, err := imp.resolveCustomer(ctx, resolved, name, fieldAt(row, cols.Email), fieldAt(row, cols.Phone))
		if err != nil {
			imp.logger.Warn(ctx, "customer resolution failed, skipping row", "line", line, "error", err)
			imp.skip(report, line, "customer creation failed")
			continue
		}

		if _, err := imp.svc.CreateMessage(ctx, customerID, content, imp.classify.Classify(content)); err != nil {
			imp.logger.Warn(ctx, "message creation failed, skipping row", "line", line, "error", err)
			imp.skip(report, line, "message creation failed")
			continue
		}

		report.Imported++
		if imp.metrics != nil {
			imp.metrics.ImportRowsTotal.WithLabelValues("imported").Inc()
		}
	}

	imp.logger.Info(ctx, "import complete",
		"imported", report.Imported,
		"considered", report.Considered,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// resolveCustomer returns the ID for name, reusing the customer from
// the per-run cache or the store, creating one otherwise. Contact info
// on a repeat name is ignored: first writer wins. A read failure that
// is not a clean miss is logged and treated as a miss, accepting the
// risk of a duplicate creation attempt downstream.
func (imp *Importer) resolveCustomer(ctx context.Context, resolved map[string]string, name, email, phone string) (string, error) {
	if id, ok := resolved[name]; ok {
		return id, nil
	}

	existing, ok, err := imp.svc.Store().FindCustomerByName(ctx, name)
	if err != nil {
		imp.logger.Warn(ctx, "customer lookup failed, treating as not found", "name", name, "error", err)
	}
	if ok {
		resolved[name] = existing.ID
		return existing.ID, nil
	}

	c := &desk.Customer{
		ID:          ulid.Make().String(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		ProfileInfo: map[string]any{},
		CreatedAt:   time.Now(),
	}
	if err := imp.svc.Store().CreateCustomer(ctx, c); err != nil {
		return "", err
	}
	resolved[name] = c.ID
	return c.ID, nil
}

func (imp *Importer) skip(report *Report, line int, reason string) {
	report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: reason})
	if imp.metrics != nil {
		imp.metrics.ImportRowsTotal.WithLabelValues("skipped").Inc()
	}
}

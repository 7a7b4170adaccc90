package deskapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/frontdesk/internal/ingest"
)

func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, `{"error":"failed to read request body"}`, http.StatusBadRequest)
		return
	}

	report, err := a.importer.Run(r.Context(), string(body))
	switch {
	case errors.Is(err, ingest.ErrTooShort), errors.Is(err, ingest.ErrMissingColumns):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	case err != nil:
		// canceled mid-import; the partial report is still meaningful
		a.logger.Warn(r.Context(), "import interrupted", "error", err, "imported", report.Imported)
		writeJSON(w, http.StatusOK, importBody(report, true))
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.Int("frontdesk.import.imported", report.Imported),
		attribute.Int("frontdesk.import.considered", report.Considered),
	)

	writeJSON(w, http.StatusOK, importBody(report, false))
}

func importBody(report *ingest.Report, partial bool) map[string]any {
	body := map[string]any{
		"summary": fmt.Sprintf("Successfully imported %d messages", report.Imported),
		"report":  report,
	}
	if partial {
		body["partial"] = true
	}
	return body
}

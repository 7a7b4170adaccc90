package deskapi

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

// validFilters are the status values accepted on the list endpoint.
var validFilters = map[desk.Status]bool{
	desk.StatusAll:        true,
	desk.StatusNew:        true,
	desk.StatusInProgress: true,
	desk.StatusResolved:   true,
}

func (a *API) handleListMessages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	status := desk.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = desk.StatusAll
	}
	if !validFilters[status] {
		http.Error(w, `{"error":"invalid status filter"}`, http.StatusBadRequest)
		return
	}

	msgs, err := a.svc.ListMessages(r.Context(), query, status)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list messages")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int("frontdesk.messages.count", len(msgs)))

	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (a *API) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("frontdesk.message.id", id))

	m, responses, ok, err := a.svc.GetMessage(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get message", "id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   m,
		"responses": responses,
	})
}

func (a *API) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := a.svc.Resolve(r.Context(), id)
	switch {
	case errors.Is(err, desk.ErrNotFound):
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	case err != nil:
		a.logger.Error(r.Context(), err, "failed to resolve message", "id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": desk.StatusResolved})
}

package deskapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/frontdesk/internal/desk"
)

type respondRequest struct {
	Content string `json:"content"`
}

func (a *API) handleRespond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		http.Error(w, `{"error":"content is required"}`, http.StatusBadRequest)
		return
	}

	resp, err := a.svc.Respond(r.Context(), id, req.Content)
	switch {
	case errors.Is(err, desk.ErrNotFound):
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	case err != nil:
		a.logger.Error(r.Context(), err, "failed to record response", "message_id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

package deskapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type createCannedRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

func (a *API) handleListCanned(w http.ResponseWriter, r *http.Request) {
	canned, err := a.svc.ListCannedResponses(r.Context())
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list canned responses")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"canned_responses": canned})
}

func (a *API) handleCreateCanned(w http.ResponseWriter, r *http.Request) {
	var req createCannedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		http.Error(w, `{"error":"title and content are required"}`, http.StatusBadRequest)
		return
	}

	cr, err := a.svc.CreateCannedResponse(r.Context(), req.Title, req.Category, req.Content)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to create canned response")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, cr)
}

func (a *API) handleUseCanned(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cr, ok, err := a.svc.UseCannedResponse(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to use canned response", "id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cr)
}

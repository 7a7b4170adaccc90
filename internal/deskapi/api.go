// Package deskapi exposes the triage queue over HTTP: CSV import,
// ranked message listing, the agent response workflow, canned
// responses, and the change-feed subscription.
package deskapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/frontdesk/internal/desk"
	"github.com/linnemanlabs/frontdesk/internal/ingest"
)

// DeskService defines the business operations deskapi needs.
type DeskService interface {
	ListMessages(ctx context.Context, query string, status desk.Status) ([]*desk.Message, error)
	GetMessage(ctx context.Context, id string) (*desk.Message, []*desk.Response, bool, error)
	Respond(ctx context.Context, messageID, content string) (*desk.Response, error)
	Resolve(ctx context.Context, messageID string) error
	CreateCannedResponse(ctx context.Context, title, category, content string) (*desk.CannedResponse, error)
	ListCannedResponses(ctx context.Context) ([]*desk.CannedResponse, error)
	UseCannedResponse(ctx context.Context, id string) (*desk.CannedResponse, bool, error)
	Feed() *desk.Feed
}

// Importer defines the bulk-ingest operation deskapi needs.
type Importer interface {
	Run(ctx context.Context, rawText string) (*ingest.Report, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger   log.Logger
	svc      DeskService
	importer Importer
}

// New creates a new API handler.
func New(logger log.Logger, svc DeskService, importer Importer) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("desk service is required"))
	}
	if importer == nil {
		panic(xerrors.New("importer is required"))
	}
	return &API{
		logger:   logger,
		svc:      svc,
		importer: importer,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/imports", a.handleImport)
		r.Get("/messages", a.handleListMessages)
		r.Get("/messages/watch", a.handleWatchMessages)
		r.Get("/messages/{id}", a.handleGetMessage)
		r.Post("/messages/{id}/responses", a.handleRespond)
		r.Post("/messages/{id}/resolve", a.handleResolve)
		r.Get("/canned", a.handleListCanned)
		r.Post("/canned", a.handleCreateCanned)
		r.Post("/canned/{id}/use", a.handleUseCanned)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

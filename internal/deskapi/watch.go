package deskapi

import (
	"fmt"
	"net/http"
	"time"
)

// keepaliveInterval keeps idle SSE connections from being reaped by
// intermediaries.
const keepaliveInterval = 30 * time.Second

// handleWatchMessages streams a server-sent "reload" event whenever
// the messages collection changes. Clients re-query the list endpoint
// on each event; no diff is carried.
func (a *API) handleWatchMessages(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	changes := a.svc.Feed().Subscribe(ctx)

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			fmt.Fprint(w, "event: reload\ndata: {}\n\n")
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}

// Package httptransport exposes the webhook surface of the intake service:
// inbound messaging-platform events come in as JSON posts, replies go back
// out through a Sender. It stays thin; the conversation engine owns all
// behavior.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/events", h.handleEvent)
	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

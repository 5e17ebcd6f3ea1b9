package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelfares/internal/adapters/travelport"
)

// SearchPath matches the real catalog search endpoint so clients can point
// at the mock without changing anything but the base URL.
const SearchPath = "/11/air/catalog/search/catalogproductofferings"

const serviceName = "Travelport Mock API Server"
const serviceVersion = "1.0.0"

type Handlers struct{ R *Responder }

func NewHandlers(r *Responder) *Handlers { return &Handlers{R: r} }

func (h *Handlers) Register(r chi.Router) {
	r.Post(SearchPath, h.search)
	r.Get("/health", h.health)
	r.Get("/", h.index)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	var req travelport.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.R.Respond(req)
	if err != nil {
		if errors.Is(err, ErrNoCriteria) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No search criteria provided"})
			return
		}
		log.Error().Err(err).Msg("mock search failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	log.Info().
		Int("offerings", len(resp.Response.Offerings.Offering)).
		Msg("mock search served")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"search": SearchPath + " (POST)",
			"health": "/health (GET)",
		},
		"usage": "Send POST requests to " + SearchPath + " with the catalog search request format",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

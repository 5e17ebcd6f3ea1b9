package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelfares/internal/adapters/travelport"
	"travelfares/internal/app"
	"travelfares/internal/domain"
)

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/orders/{id}/flights/search", h.searchFlights)
	s.mux.Post("/v1/orders/{id}/flights/select", h.selectOffer)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) searchFlights(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var c domain.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be search criteria JSON")
		return
	}

	rs, err := h.S.Search(r.Context(), orderID, c)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Token  int64          `json:"token"`
		Offers []domain.Offer `json:"offers"`
	}{Token: rs.Token, Offers: rs.Offers})
}

func writeSearchError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var se *travelport.StatusError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Search Criteria", ve.Error())
	case errors.Is(err, domain.ErrNoOffers):
		writeProblem(w, http.StatusNotFound, "No Results", domain.ErrNoOffers.Error())
	case errors.Is(err, domain.ErrStaleSearch):
		writeProblem(w, http.StatusConflict, "Superseded", domain.ErrStaleSearch.Error())
	case errors.As(err, &se):
		writeProblem(w, http.StatusBadGateway, "Flight Search Failed",
			fmt.Sprintf("flight search service error (HTTP %d): %s", se.Status, se.Body))
	case errors.Is(err, travelport.ErrNoResponse):
		writeProblem(w, http.StatusBadGateway, "Flight Search Failed", "no valid response from flight search service")
	default:
		log.Error().Err(err).Msg("flight search failed")
		writeProblem(w, http.StatusBadGateway, "Flight Search Failed", "error connecting to flight search service")
	}
}

type selectRequest struct {
	Token         int64  `json:"token"`
	OfferID       string `json:"offer_id,omitempty"`
	OrderCurrency string `json:"order_currency,omitempty"`
}

func (h *Handlers) selectOffer(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be selection JSON")
		return
	}

	line, err := h.S.Select(r.Context(), orderID, req.Token, req.OfferID, req.OrderCurrency)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoResults), errors.Is(err, domain.ErrNoOffers):
			writeProblem(w, http.StatusNotFound, "No Results", err.Error())
		case errors.Is(err, domain.ErrOfferNotFound):
			writeProblem(w, http.StatusNotFound, "Offer Not Found", err.Error())
		case errors.Is(err, domain.ErrStaleSearch):
			writeProblem(w, http.StatusConflict, "Superseded", err.Error())
		default:
			log.Error().Err(err).Msg("offer selection failed")
			writeProblem(w, http.StatusInternalServerError, "Selection Failed", "could not attach offer to order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, line)
}

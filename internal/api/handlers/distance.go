package handlers

import (
	"log"
	"net/http"

	"fuel-logistics-service/internal/api/dto"
	"fuel-logistics-service/internal/ports"
)

// DistanceHandler exposes the travel estimator for ad-hoc lookups.
type DistanceHandler struct {
	Estimator ports.TravelEstimator
}

func (h *DistanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	if origin == "" || destination == "" {
		writeError(w, r, http.StatusBadRequest, "origin and destination are required")
		return
	}

	res, err := h.Estimator.Estimate(r.Context(), origin, destination)
	if err != nil {
		log.Printf("distance estimate failed origin=%s destination=%s err=%v", origin, destination, err)
		writeError(w, r, http.StatusBadGateway, "travel estimate unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		Origin:          origin,
		Destination:     destination,
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
	})
}

package handlers

import (
	"net/http"

	"fuel-logistics-service/internal/api/dto"
	"fuel-logistics-service/internal/services/capacity"
)

// CapacityHandler exposes the synchronous capacity simulator.
type CapacityHandler struct{}

// Simulate runs the greedy capacity simulation for the requested horizon and
// fleet composition. Input validation failures are reported to the caller;
// the simulation itself cannot fail.
func (h *CapacityHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SimulateRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	in := toCapacityInput(req)
	if err := in.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := capacity.Simulate(in)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toSimulateResponse(res))
}

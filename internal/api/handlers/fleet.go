package handlers

import (
	"log"
	"net/http"

	"fuel-logistics-service/internal/api/dto"
	"fuel-logistics-service/internal/ports"
)

// FleetHandler serves the stored fleet snapshot: the triangle's locations,
// the trucks and the shared trailer pool. Clients use the counts as defaults
// for simulation requests.
type FleetHandler struct {
	Repo ports.FleetRepository
}

func (h *FleetHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()

	locations, err := h.Repo.ListLocations(ctx)
	if err != nil {
		log.Printf("list locations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	vehicles, err := h.Repo.ListVehicles(ctx)
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	trailers, err := h.Repo.ListTrailers(ctx)
	if err != nil {
		log.Printf("list trailers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.FleetResponse{
		Locations: make([]dto.LocationResponse, 0, len(locations)),
		Vehicles:  make([]dto.VehicleResponse, 0, len(vehicles)),
		Trailers:  make([]dto.TrailerResponse, 0, len(trailers)),
	}
	for _, loc := range locations {
		res.Locations = append(res.Locations, dto.LocationResponse{
			LocationID: loc.LocationID,
			Name:       loc.Name,
			Kind:       string(loc.Kind),
			Address:    loc.Address,
			Lon:        loc.Coords.Lon,
			Lat:        loc.Coords.Lat,
		})
	}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleID:          v.VehicleID,
			Plate:              v.Plate,
			TankCapacityLiters: v.TankCapacityLiters,
			ADRCertified:       v.ADRCertified,
		})
	}
	for _, tr := range trailers {
		res.Trailers = append(res.Trailers, dto.TrailerResponse{
			TrailerID:      tr.TrailerID,
			Plate:          tr.Plate,
			CapacityLiters: tr.CapacityLiters,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

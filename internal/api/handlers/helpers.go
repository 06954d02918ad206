package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"fuel-logistics-service/internal/api/dto"
	"fuel-logistics-service/internal/domain"
	"fuel-logistics-service/internal/services/capacity"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeStrict reads exactly one JSON object into v, rejecting unknown fields
// and trailing content.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// toCapacityInput converts the wire shape into simulator input, expanding
// uniform driver counts when explicit per-day shifts are absent.
func toCapacityInput(req dto.SimulateRequest) capacity.Input {
	in := capacity.Input{
		Days:                req.Days,
		NumTrailers:         req.NumTrailers,
		NumVehicles:         req.NumVehicles,
		InitialFullTrailers: req.InitialFullTrailers,
		InitialFullTanks:    req.InitialFullTanks,
	}

	if len(req.TiranoShifts) > 0 {
		in.TiranoShifts = toShiftPools(req.TiranoShifts)
	} else {
		in.TiranoShifts = capacity.UniformShifts("tirano", req.NumTiranoDrivers, req.TiranoDriverHours, req.Days)
	}
	if len(req.LivignoShifts) > 0 {
		in.LivignoShifts = toShiftPools(req.LivignoShifts)
	} else {
		in.LivignoShifts = capacity.UniformShifts("livigno", req.NumLivignoDrivers, req.LivignoDriverHours, req.Days)
	}

	return in
}

func toShiftPools(days [][]dto.ShiftRequest) [][]capacity.DriverShift {
	out := make([][]capacity.DriverShift, 0, len(days))
	for _, shifts := range days {
		day := make([]capacity.DriverShift, 0, len(shifts))
		for _, sh := range shifts {
			day = append(day, capacity.DriverShift{DriverID: sh.DriverID, Hours: sh.Hours})
		}
		out = append(out, day)
	}
	return out
}

func toSimulateResponse(res *domain.CapacityResult) *dto.SimulateResponse {
	out := &dto.SimulateResponse{
		TotalLiters:        res.TotalLiters,
		DaysWithDeliveries: res.DaysWithDeliveries,
		Breakdown:          tripCounts(res.Breakdown),
		DayPlans:           make([]dto.DayPlanResponse, 0, len(res.DayPlans)),
	}

	for _, dp := range res.DayPlans {
		out.DayPlans = append(out.DayPlans, dto.DayPlanResponse{
			Day:             dp.Day,
			TripCounts:      tripCounts(dp.TripCounts),
			LitersDelivered: dp.LitersDelivered,
			HoursUsed:       dp.HoursUsed,
			Resources: dto.ResourceStateResponse{
				FullTrailers:  dp.Resources.FullTrailers,
				EmptyTrailers: dp.Resources.EmptyTrailers,
				FullTanks:     dp.Resources.FullTanks,
				EmptyTanks:    dp.Resources.EmptyTanks,
			},
		})
	}

	return out
}

func tripCounts(counts map[domain.TripType]int) map[string]int {
	out := make(map[string]int, len(counts))
	for t, c := range counts {
		out[string(t)] = c
	}
	return out
}

func toFindingResponses(findings []domain.Finding) []dto.FindingResponse {
	out := make([]dto.FindingResponse, 0, len(findings))
	for _, f := range findings {
		out = append(out, dto.FindingResponse{
			Type:       string(f.Type),
			Severity:   string(f.Severity),
			Message:    f.Message,
			DriverID:   f.DriverID,
			DriverName: f.DriverName,
			Date:       f.Date,
			Value:      f.Value,
			Limit:      f.Limit,
		})
	}
	return out
}

func toValidationResponse(report *domain.ValidationReport) *dto.ValidationResponse {
	return &dto.ValidationResponse{
		IsValid:    report.IsValid,
		Violations: toFindingResponses(report.Violations),
		Warnings:   toFindingResponses(report.Warnings),
	}
}

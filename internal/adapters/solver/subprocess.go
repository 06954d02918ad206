package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"fuel-logistics-service/internal/jobs"
	"fuel-logistics-service/internal/services/capacity"
)

// Subprocess invokes the external constraint-solver engine as a black box:
// JSON input on stdin, JSON result on stdout. The solver appends progress
// lines to the given log path as it improves and polls the cancel flag path,
// returning its best-so-far result when the flag appears.
type Subprocess struct {
	Binary string
	Args   []string
}

func NewSubprocess(binary string, args ...string) *Subprocess {
	return &Subprocess{Binary: binary, Args: args}
}

func (s *Subprocess) Name() string { return "solver" }

type shiftPayload struct {
	DriverID string  `json:"driver_id"`
	Hours    float64 `json:"hours"`
}

type solveInput struct {
	Days                int              `json:"days"`
	TiranoShifts        [][]shiftPayload `json:"tirano_shifts"`
	LivignoShifts       [][]shiftPayload `json:"livigno_shifts"`
	NumTrailers         int              `json:"num_trailers"`
	NumVehicles         int              `json:"num_vehicles"`
	InitialFullTrailers int              `json:"initial_full_trailers"`
	InitialFullTanks    int              `json:"initial_full_tanks"`
	TimeLimitSeconds    int              `json:"time_limit_seconds,omitempty"`
	NumSearchWorkers    int              `json:"num_search_workers,omitempty"`
	ProgressLogPath     string           `json:"progress_log_path"`
	CancelFlagPath      string           `json:"cancel_flag_path"`
}

type solveOutput struct {
	Statistics struct {
		TotalLiters int `json:"totalLiters"`
		TotalTrips  int `json:"totalTrips"`
	} `json:"statistics"`
	SolverObjectiveLiters *int     `json:"solverObjectiveLiters"`
	SolverStatus          string   `json:"solverStatus"`
	Warnings              []string `json:"warnings"`
}

// Run implements jobs.Strategy.
func (s *Subprocess) Run(ctx context.Context, req jobs.Request) (*jobs.Result, error) {
	if strings.TrimSpace(s.Binary) == "" {
		return nil, errors.New("run solver: binary not configured")
	}

	payload, err := json.Marshal(toSolveInput(req))
	if err != nil {
		return nil, fmt.Errorf("run solver: marshal input: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.Binary, s.Args...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("run solver: %w: %s", err, detail)
		}
		return nil, fmt.Errorf("run solver: %w", err)
	}

	var out solveOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return nil, fmt.Errorf("run solver: decode result: %w", err)
	}

	return &jobs.Result{
		TotalLiters:           out.Statistics.TotalLiters,
		TotalTrips:            out.Statistics.TotalTrips,
		SolverObjectiveLiters: out.SolverObjectiveLiters,
		SolverStatus:          out.SolverStatus,
		Warnings:              out.Warnings,
	}, nil
}

// SelfCheckReport compares a persisted plan's realized liters against a fresh
// dry-run solve of the same input.
type SelfCheckReport struct {
	RealizedLiters int
	SolvedLiters   int
	DeltaLiters    int
	Matches        bool
}

// SelfCheck reruns the solver on the plan's input and reports whether the
// realized volume is within one tank of the recomputed optimum.
func (s *Subprocess) SelfCheck(ctx context.Context, realizedLiters int, req jobs.Request) (*SelfCheckReport, error) {
	result, err := s.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("self check: %w", err)
	}

	delta := result.TotalLiters - realizedLiters
	if delta < 0 {
		delta = -delta
	}
	return &SelfCheckReport{
		RealizedLiters: realizedLiters,
		SolvedLiters:   result.TotalLiters,
		DeltaLiters:    delta,
		Matches:        delta <= capacity.LitersPerTank,
	}, nil
}

func toSolveInput(req jobs.Request) solveInput {
	return solveInput{
		Days:                req.Input.Days,
		TiranoShifts:        toShiftPayloads(req.Input.TiranoShifts),
		LivignoShifts:       toShiftPayloads(req.Input.LivignoShifts),
		NumTrailers:         req.Input.NumTrailers,
		NumVehicles:         req.Input.NumVehicles,
		InitialFullTrailers: req.Input.InitialFullTrailers,
		InitialFullTanks:    req.Input.InitialFullTanks,
		TimeLimitSeconds:    req.TimeLimitSeconds,
		NumSearchWorkers:    req.NumSearchWorkers,
		ProgressLogPath:     req.ProgressLogPath,
		CancelFlagPath:      req.CancelFlagPath,
	}
}

func toShiftPayloads(pool [][]capacity.DriverShift) [][]shiftPayload {
	out := make([][]shiftPayload, len(pool))
	for day, shifts := range pool {
		converted := make([]shiftPayload, 0, len(shifts))
		for _, sh := range shifts {
			converted = append(converted, shiftPayload{DriverID: sh.DriverID, Hours: sh.Hours})
		}
		out[day] = converted
	}
	return out
}

package solver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fuel-logistics-service/internal/jobs"
	"fuel-logistics-service/internal/services/capacity"
)

// stubBinary writes an executable shell script that drains stdin and prints
// the given payload, standing in for the real solver engine.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write stub binary: %v", err)
	}
	return path
}

func TestRunParsesSolverOutput(t *testing.T) {
	bin := stubBinary(t, `cat >/dev/null
echo '{"statistics":{"totalLiters":140000,"totalTrips":16},"solverObjectiveLiters":141000,"solverStatus":"OPTIMAL","warnings":["time limit reached"]}'`)

	res, err := NewSubprocess(bin).Run(context.Background(), jobs.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalLiters != 140000 || res.TotalTrips != 16 {
		t.Fatalf("unexpected statistics: %+v", res)
	}
	if res.SolverObjectiveLiters == nil || *res.SolverObjectiveLiters != 141000 {
		t.Fatalf("unexpected objective: %+v", res.SolverObjectiveLiters)
	}
	if res.SolverStatus != "OPTIMAL" {
		t.Fatalf("unexpected status %q", res.SolverStatus)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "time limit reached" {
		t.Fatalf("unexpected warnings %v", res.Warnings)
	}
}

func TestRunSurfacesStderr(t *testing.T) {
	bin := stubBinary(t, `cat >/dev/null
echo 'infeasible model' >&2
exit 3`)

	_, err := NewSubprocess(bin).Run(context.Background(), jobs.Request{})
	if err == nil {
		t.Fatalf("expected error from failing solver")
	}
	if !strings.Contains(err.Error(), "infeasible model") {
		t.Fatalf("expected stderr detail, got %v", err)
	}
}

func TestRunRequiresBinary(t *testing.T) {
	if _, err := NewSubprocess("").Run(context.Background(), jobs.Request{}); err == nil {
		t.Fatalf("expected error for unconfigured binary")
	}
}

func TestSelfCheckWithinTolerance(t *testing.T) {
	bin := stubBinary(t, `cat >/dev/null
echo '{"statistics":{"totalLiters":140000,"totalTrips":16},"solverStatus":"OPTIMAL"}'`)

	report, err := NewSubprocess(bin).SelfCheck(context.Background(), 140000-capacity.LitersPerTank, jobs.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Matches {
		t.Fatalf("expected a one-tank delta to match, got %+v", report)
	}
	if report.SolvedLiters != 140000 || report.DeltaLiters != capacity.LitersPerTank {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestSelfCheckDetectsDrift(t *testing.T) {
	bin := stubBinary(t, `cat >/dev/null
echo '{"statistics":{"totalLiters":140000,"totalTrips":16},"solverStatus":"OPTIMAL"}'`)

	report, err := NewSubprocess(bin).SelfCheck(context.Background(), 87500, jobs.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Matches {
		t.Fatalf("expected a three-tank delta to mismatch, got %+v", report)
	}
	if report.RealizedLiters != 87500 || report.DeltaLiters != 52500 {
		t.Fatalf("unexpected report %+v", report)
	}
}

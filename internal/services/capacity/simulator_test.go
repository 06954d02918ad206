package capacity

import (
	"fmt"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"fuel-logistics-service/internal/domain"
)

func TestSimulateMixedFleetScenario(t *testing.T) {
	in := Input{
		Days:         5,
		TiranoShifts: UniformShifts("tirano", 2, 9, 5),
		NumTrailers:  4,
		NumVehicles:  3,
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLiters := []int{0, 52500, 0, 52500, 35000}
	if len(res.DayPlans) != len(wantLiters) {
		t.Fatalf("expected %d day plans, got %d", len(wantLiters), len(res.DayPlans))
	}
	for i, want := range wantLiters {
		if got := res.DayPlans[i].LitersDelivered; got != want {
			t.Fatalf("day %d: expected %d liters, got %d", i, want, got)
		}
	}

	if res.TotalLiters != 140000 {
		t.Fatalf("expected 140000 total liters, got %d", res.TotalLiters)
	}
	if res.DaysWithDeliveries != 3 {
		t.Fatalf("expected 3 delivery days, got %d", res.DaysWithDeliveries)
	}

	wantBreakdown := map[domain.TripType]int{
		domain.TripSupply:    4,
		domain.TripTransfer:  4,
		domain.TripShuttle:   7,
		domain.TripFullRound: 1,
	}
	if !reflect.DeepEqual(res.Breakdown, wantBreakdown) {
		t.Fatalf("expected breakdown %v, got %v", wantBreakdown, res.Breakdown)
	}
}

// Trailer and tank counts must be conserved at every day boundary: trips move
// resources between full and empty states, never create or destroy them.
func TestSimulateResourceConservation(t *testing.T) {
	in := Input{
		Days:                7,
		TiranoShifts:        UniformShifts("tirano", 3, 9, 7),
		LivignoShifts:       UniformShifts("livigno", 1, 9, 7),
		NumTrailers:         5,
		NumVehicles:         4,
		InitialFullTrailers: 1,
		InitialFullTanks:    2,
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, dp := range res.DayPlans {
		if got := dp.Resources.TotalTrailers(); got != in.NumTrailers {
			t.Fatalf("day %d: expected %d trailers, got %d", dp.Day, in.NumTrailers, got)
		}
		if got := dp.Resources.TotalTanks(); got != in.NumVehicles {
			t.Fatalf("day %d: expected %d tanks, got %d", dp.Day, in.NumVehicles, got)
		}
	}
}

func TestSimulateDeterministic(t *testing.T) {
	in := Input{
		Days:          6,
		TiranoShifts:  UniformShifts("tirano", 2, 9, 6),
		LivignoShifts: UniformShifts("livigno", 2, 9, 6),
		NumTrailers:   4,
		NumVehicles:   3,
	}

	first, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results across runs")
	}
}

// A lone Tirano driver alternates supply days and delivery days: the 6h
// supply leaves too little for a shuttle, so volume lands every other day.
func TestSimulateSingleDriverAlternatesPhases(t *testing.T) {
	res, err := Simulate(Input{
		Days:         5,
		TiranoShifts: UniformShifts("tirano", 1, 9, 5),
		NumTrailers:  4,
		NumVehicles:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLiters := []int{0, 35000, 0, 35000, 17500}
	for i, want := range wantLiters {
		if got := res.DayPlans[i].LitersDelivered; got != want {
			t.Fatalf("day %d: expected %d liters, got %d", i, want, got)
		}
	}
	if res.TotalLiters != 87500 {
		t.Fatalf("expected 87500 total liters, got %d", res.TotalLiters)
	}
}

// Extra driver availability must never cost volume. Each trial simulates a
// random fleet, then re-simulates with one extra 9h driver-day dropped into a
// random day of a random pool.
func TestSimulateAddingDriverDayNeverReducesVolume(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 300; trial++ {
		days := 1 + rng.Intn(4)
		base := Input{
			Days:          days,
			TiranoShifts:  randomPool("tirano", rng, days, 3),
			LivignoShifts: randomPool("livigno", rng, days, 2),
			NumTrailers:   rng.Intn(5),
			NumVehicles:   rng.Intn(5),
		}
		base.InitialFullTrailers = rng.Intn(base.NumTrailers + 1)
		base.InitialFullTanks = rng.Intn(base.NumVehicles + 1)

		before, err := Simulate(base)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		bigger := base
		day := rng.Intn(days)
		if rng.Intn(2) == 0 {
			bigger.TiranoShifts = withExtraShift(base.TiranoShifts, day, "tirano-extra")
		} else {
			bigger.LivignoShifts = withExtraShift(base.LivignoShifts, day, "livigno-extra")
		}

		after, err := Simulate(bigger)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		if after.TotalLiters < before.TotalLiters {
			t.Fatalf("trial %d: extra driver-day on day %d lost volume: %d -> %d\nbase: %+v",
				trial, day, before.TotalLiters, after.TotalLiters, base)
		}
	}
}

func randomPool(prefix string, rng *rand.Rand, days, maxDrivers int) [][]DriverShift {
	pool := make([][]DriverShift, days)
	for day := range pool {
		count := rng.Intn(maxDrivers + 1)
		shifts := make([]DriverShift, 0, count)
		for i := 0; i < count; i++ {
			shifts = append(shifts, DriverShift{
				DriverID: fmt.Sprintf("%s-%d", prefix, i+1),
				Hours:    9,
			})
		}
		pool[day] = shifts
	}
	return pool
}

func withExtraShift(pool [][]DriverShift, day int, driverID string) [][]DriverShift {
	out := slices.Clone(pool)
	out[day] = append(slices.Clone(pool[day]), DriverShift{DriverID: driverID, Hours: 9})
	return out
}

// A Livigno driver who can neither shuttle nor restock usefully on the last
// day must stay idle instead of displacing the Tirano full rounds.
func TestSimulateIdleLivignoDriverOnFinalDay(t *testing.T) {
	base := Input{
		Days:             2,
		TiranoShifts:     UniformShifts("tirano", 3, 9, 2),
		NumTrailers:      1,
		NumVehicles:      2,
		InitialFullTanks: 2,
	}
	withLivigno := base
	withLivigno.LivignoShifts = [][]DriverShift{1: {{DriverID: "livigno-1", Hours: 9}}}

	before, err := Simulate(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := Simulate(withLivigno)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if before.TotalLiters != 105000 {
		t.Fatalf("expected 105000 base liters, got %d", before.TotalLiters)
	}
	if after.TotalLiters != 105000 {
		t.Fatalf("expected the idle driver to change nothing, got %d", after.TotalLiters)
	}
	if got := after.Breakdown[domain.TripSupplyFromLivigno]; got != 0 {
		t.Fatalf("expected no extended supply on the final day, got %d", got)
	}
}

func TestSimulateZeroDays(t *testing.T) {
	res, err := Simulate(Input{NumTrailers: 4, NumVehicles: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalLiters != 0 {
		t.Fatalf("expected 0 liters, got %d", res.TotalLiters)
	}
	if len(res.DayPlans) != 0 {
		t.Fatalf("expected no day plans, got %d", len(res.DayPlans))
	}
}

func TestSimulateNoDrivers(t *testing.T) {
	res, err := Simulate(Input{
		Days:                3,
		NumTrailers:         4,
		NumVehicles:         3,
		InitialFullTrailers: 4,
		InitialFullTanks:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalLiters != 0 {
		t.Fatalf("expected 0 liters with no drivers, got %d", res.TotalLiters)
	}
	if len(res.DayPlans) != 3 {
		t.Fatalf("expected 3 day plans, got %d", len(res.DayPlans))
	}
	last := res.DayPlans[2].Resources
	if last.FullTrailers != 4 || last.FullTanks != 3 {
		t.Fatalf("expected untouched inventory, got %+v", last)
	}
}

// One Livigno driver alone alternates extended supply days and delivery days,
// and the two-per-window exception budget blocks a third extended trip.
func TestSimulateExtendedSupplyBudget(t *testing.T) {
	in := Input{
		Days:          5,
		LivignoShifts: UniformShifts("livigno", 1, 9, 5),
		NumTrailers:   4,
		NumVehicles:   3,
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLiters := []int{0, 35000, 0, 35000, 0}
	for i, want := range wantLiters {
		if got := res.DayPlans[i].LitersDelivered; got != want {
			t.Fatalf("day %d: expected %d liters, got %d", i, want, got)
		}
	}

	if got := res.Breakdown[domain.TripSupplyFromLivigno]; got != MaxADRExtendedPerWeek {
		t.Fatalf("expected %d extended trips, got %d", MaxADRExtendedPerWeek, got)
	}
}

// The exception budget renews at the 5-day window boundary, so a 10-day run
// doubles the extended trip count of the 5-day run.
func TestSimulateExtendedSupplyWindowRenewal(t *testing.T) {
	in := Input{
		Days:          10,
		LivignoShifts: UniformShifts("livigno", 1, 9, 10),
		NumTrailers:   4,
		NumVehicles:   3,
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.Breakdown[domain.TripSupplyFromLivigno]; got != 2*MaxADRExtendedPerWeek {
		t.Fatalf("expected %d extended trips over two windows, got %d", 2*MaxADRExtendedPerWeek, got)
	}
	if res.TotalLiters != 140000 {
		t.Fatalf("expected 140000 total liters, got %d", res.TotalLiters)
	}
}

// Pre-filled inventory on a single-day horizon goes straight to delivery:
// there is no replenishment phase on the final day.
func TestSimulateInitialInventorySingleDay(t *testing.T) {
	in := Input{
		Days:             1,
		TiranoShifts:     UniformShifts("tirano", 2, 9, 1),
		NumTrailers:      4,
		NumVehicles:      3,
		InitialFullTanks: 3,
	}

	res, err := Simulate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalLiters != 52500 {
		t.Fatalf("expected 52500 liters, got %d", res.TotalLiters)
	}
	if got := res.Breakdown[domain.TripSupply]; got != 0 {
		t.Fatalf("expected no supply trips on a final day, got %d", got)
	}
}

func TestSimulateRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"negative days", Input{Days: -1}},
		{"negative trailers", Input{Days: 1, NumTrailers: -1}},
		{"full trailers beyond total", Input{Days: 1, NumTrailers: 2, InitialFullTrailers: 3}},
		{"full tanks beyond total", Input{Days: 1, NumVehicles: 1, InitialFullTanks: 2}},
		{"missing driver id", Input{
			Days:         1,
			TiranoShifts: [][]DriverShift{{{Hours: 9}}},
		}},
		{"hours above daily budget", Input{
			Days:          1,
			LivignoShifts: [][]DriverShift{{{DriverID: "livigno-1", Hours: 9.5}}},
		}},
		{"negative hours", Input{
			Days:         1,
			TiranoShifts: [][]DriverShift{{{DriverID: "tirano-1", Hours: -1}}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Simulate(tc.in); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestUniformShifts(t *testing.T) {
	shifts := UniformShifts("tirano", 2, 9, 3)

	if len(shifts) != 3 {
		t.Fatalf("expected 3 days, got %d", len(shifts))
	}
	for day, list := range shifts {
		if len(list) != 2 {
			t.Fatalf("day %d: expected 2 shifts, got %d", day, len(list))
		}
	}
	if shifts[0][0].DriverID != "tirano-1" || shifts[0][1].DriverID != "tirano-2" {
		t.Fatalf("unexpected driver ids: %+v", shifts[0])
	}
}

package capacity

import (
	"errors"
	"fmt"
	"maps"

	"fuel-logistics-service/internal/domain"
)

// One driver's availability for one simulated day.
type DriverShift struct {
	DriverID string
	Hours    float64
}

// Input for a capacity simulation. Shift slices are indexed by day; a day at
// or past the end of a slice simply has no drivers from that pool.
type Input struct {
	Days                int
	TiranoShifts        [][]DriverShift
	LivignoShifts       [][]DriverShift
	NumTrailers         int
	NumVehicles         int
	InitialFullTrailers int
	InitialFullTanks    int
}

// UniformShifts expands "count drivers at hours each, every day" into per-day
// shift lists. Driver ids are derived from the prefix.
func UniformShifts(prefix string, count int, hours float64, days int) [][]DriverShift {
	out := make([][]DriverShift, days)
	for day := 0; day < days; day++ {
		shifts := make([]DriverShift, 0, count)
		for i := 0; i < count; i++ {
			shifts = append(shifts, DriverShift{
				DriverID: fmt.Sprintf("%s-%d", prefix, i+1),
				Hours:    hours,
			})
		}
		out[day] = shifts
	}
	return out
}

// Validate rejects malformed input before any simulation starts. Degenerate
// but well-formed input (zero days, empty pools) is valid and yields a zero
// result.
func (in Input) Validate() error {
	if in.Days < 0 {
		return errors.New("simulate capacity: days must not be negative")
	}
	if in.NumTrailers < 0 || in.NumVehicles < 0 {
		return errors.New("simulate capacity: trailer and vehicle counts must not be negative")
	}
	if in.InitialFullTrailers < 0 || in.InitialFullTrailers > in.NumTrailers {
		return fmt.Errorf(
			"simulate capacity: initial full trailers must be between 0 and %d",
			in.NumTrailers,
		)
	}
	if in.InitialFullTanks < 0 || in.InitialFullTanks > in.NumVehicles {
		return fmt.Errorf(
			"simulate capacity: initial full tanks must be between 0 and %d",
			in.NumVehicles,
		)
	}

	for _, pool := range [][][]DriverShift{in.TiranoShifts, in.LivignoShifts} {
		for day, shifts := range pool {
			for _, sh := range shifts {
				if sh.DriverID == "" {
					return fmt.Errorf("simulate capacity: day %d has a shift without a driver id", day)
				}
				if sh.Hours < 0 || sh.Hours > MaxDriverHours {
					return fmt.Errorf(
						"simulate capacity: driver %q day %d: hours must be between 0 and %v",
						sh.DriverID, day, MaxDriverHours,
					)
				}
			}
		}
	}

	return nil
}

// Simulate computes the maximum deliverable volume over the horizon with a
// greedy day-by-day allocation. It is pure and deterministic for a given
// input and performs no I/O; every call owns its own ledger and driver state.
func Simulate(in Input) (*domain.CapacityResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	result := &domain.CapacityResult{
		DayPlans:  []domain.DayPlan{},
		Breakdown: make(map[domain.TripType]int),
	}

	res := domain.ResourceState{
		FullTrailers:  in.InitialFullTrailers,
		EmptyTrailers: in.NumTrailers - in.InitialFullTrailers,
		FullTanks:     in.InitialFullTanks,
		EmptyTanks:    in.NumVehicles - in.InitialFullTanks,
	}

	adrUsed := make(map[string]int)

	for day := 0; day < in.Days; day++ {
		// The ADR exception budget renews every 5-day window.
		if day%adrWindowDays == 0 {
			clear(adrUsed)
		}

		s := newDayState(res, adrUsed)
		tirano := toDriverDays(shiftsFor(in.TiranoShifts, day))
		livigno := toDriverDays(shiftsFor(in.LivignoShifts, day))

		finalDay := day == in.Days-1
		runDay(s, tirano, livigno, finalDay,
			totalHours(shiftsFor(in.TiranoShifts, day+1)),
			totalHours(shiftsFor(in.LivignoShifts, day+1)))

		res = s.res

		result.DayPlans = append(result.DayPlans, domain.DayPlan{
			Day:             day,
			TripCounts:      maps.Clone(s.counts),
			LitersDelivered: s.liters,
			HoursUsed:       maps.Clone(s.hours),
			Resources:       res,
		})
		result.TotalLiters += s.liters
		if s.liters > 0 {
			result.DaysWithDeliveries++
		}
		for t, c := range s.counts {
			result.Breakdown[t] += c
		}
	}

	return result, nil
}

func shiftsFor(pool [][]DriverShift, day int) []DriverShift {
	if day < 0 || day >= len(pool) {
		return nil
	}
	return pool[day]
}

func toDriverDays(shifts []DriverShift) []*driverDay {
	out := make([]*driverDay, 0, len(shifts))
	for _, sh := range shifts {
		out = append(out, &driverDay{id: sh.DriverID, hoursLeft: sh.Hours})
	}
	return out
}

func totalHours(shifts []DriverShift) float64 {
	var sum float64
	for _, sh := range shifts {
		sum += sh.Hours
	}
	return sum
}

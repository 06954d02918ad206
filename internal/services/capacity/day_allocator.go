package capacity

import (
	"slices"
	"strings"

	"fuel-logistics-service/internal/domain"
)

// Safety bound on greedy delivery passes; not expected to bind for realistic
// fleet sizes.
const maxDeliveryPasses = 100

// runDay executes one simulated day in three phases: replenishment (skipped on
// the final day of the horizon), commit of staged resources, then the
// iterative delivery phase.
func runDay(s *dayState, tirano, livigno []*driverDay, finalDay bool, tomorrowTiranoHours, tomorrowLivignoHours float64) {
	if !finalDay {
		replenish(s, tirano, livigno, tomorrowTiranoHours, tomorrowLivignoHours)
	}
	s.commitPending()
	deliver(s, tirano, livigno, finalDay)
}

// replenish schedules SUPPLY trips to cover tomorrow's estimated shuttle
// potential. Tirano drivers are preferred (6h trip); Livigno drivers fill any
// remaining shortfall with extended 10h trips, gated by their ADR exception
// budget. Resources created here stay pending until the commit.
func replenish(s *dayState, tirano, livigno []*driverDay, tomorrowTiranoHours, tomorrowLivignoHours float64) {
	potential := int(tomorrowTiranoHours/shuttleHours) + int(tomorrowLivignoHours/shuttleHours)

	// Full trailers and full tanks already on hand each cover one
	// shuttle-type trip tomorrow.
	needed := potential - (s.res.FullTrailers + s.res.FullTanks)
	if needed <= 0 {
		return
	}

	// Each SUPPLY returns with a full trailer and a full tank: two units.
	wanted := (needed + 1) / 2

	sortByHoursDesc(tirano)
	for _, d := range tirano {
		if wanted == 0 {
			return
		}
		if supplyApplier.can(s, d) {
			supplyApplier.apply(s, d)
			wanted--
		}
	}

	sortByHoursDesc(livigno)
	for _, d := range livigno {
		if wanted == 0 {
			return
		}
		if stagedExtendedSupplyApplier.can(s, d) {
			stagedExtendedSupplyApplier.apply(s, d)
			wanted--
		}
	}
}

// deliver repeats greedy passes until a full pass over all drivers produces no
// action. Livigno drivers act first each pass; Tirano drivers only get their
// pass when no Livigno driver moved fuel. A Livigno extended supply counts as
// progress for the loop but not against the Tirano pass: it restocks without
// delivering, and holding the Tirano pool back for it strands their hours.
func deliver(s *dayState, tirano, livigno []*driverDay, finalDay bool) {
	livignoOrder := livignoDeliveryOrder
	if finalDay {
		livignoOrder = livignoFinalDayOrder
	}

	for pass := 0; pass < maxDeliveryPasses; pass++ {
		acted := false
		moved := false

		sortByHoursDesc(livigno)
		for _, d := range livigno {
			if trip, ok := tryFirst(s, d, livignoOrder); ok {
				acted = true
				if trip != domain.TripSupplyFromLivigno {
					moved = true
				}
			}
		}

		if !moved {
			sortByHoursDesc(tirano)
			for _, d := range tirano {
				if _, ok := tryFirst(s, d, tiranoDeliveryOrder); ok {
					acted = true
				}
			}
		}

		if !acted {
			return
		}
	}
}

// Drivers with more remaining hours are offered the action slot first, to
// avoid stranding small hour remainders. Ties break on driver id for
// determinism.
func sortByHoursDesc(ds []*driverDay) {
	slices.SortFunc(ds, func(a, b *driverDay) int {
		if a.hoursLeft != b.hoursLeft {
			if a.hoursLeft > b.hoursLeft {
				return -1
			}
			return 1
		}
		return strings.Compare(a.id, b.id)
	})
}

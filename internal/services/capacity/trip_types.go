package capacity

import (
	"fuel-logistics-service/internal/domain"
)

// Operating constants for the transport triangle.
const (
	// LitersPerTank is the volume delivered by one tank-sized trip.
	LitersPerTank = 17500

	// MaxDriverHours is the regular daily driving-hour budget.
	MaxDriverHours = 9.0

	// MaxADRExtendedPerWeek caps extended (10h) days per driver per 5-day window.
	MaxADRExtendedPerWeek = 2

	adrWindowDays = 5

	supplyHours            = 6.0
	supplyFromLivignoHours = 10.0
	transferHours          = 0.5
	shuttleHours           = 4.5
	fullRoundHours         = 9.0
)

// TripHours maps each trip type to its driving-hour cost.
var TripHours = map[domain.TripType]float64{
	domain.TripSupply:             supplyHours,
	domain.TripSupplyFromLivigno:  supplyFromLivignoHours,
	domain.TripTransfer:           transferHours,
	domain.TripShuttle:            shuttleHours,
	domain.TripShuttleFromLivigno: shuttleHours,
	domain.TripFullRound:          fullRoundHours,
}

// DeliveredLiters sums the volume a committed trip list actually moves to
// Livigno. Supply and transfer legs reposition stock without delivering;
// cancelled trips do not count.
func DeliveredLiters(trips []*domain.Trip) int {
	liters := 0
	for _, t := range trips {
		if t.Status == domain.TripCancelled {
			continue
		}
		switch t.Type {
		case domain.TripShuttle, domain.TripShuttleFromLivigno, domain.TripFullRound:
			liters += LitersPerTank
		}
	}
	return liters
}

// driverDay is the mutable per-driver state for one simulated day.
type driverDay struct {
	id        string
	hoursLeft float64
}

// dayState carries the resource ledger and the day's accumulators through the
// allocator's phases. Resources produced during the replenishment phase are
// staged as pending and only committed at the start of the delivery phase.
type dayState struct {
	res                 domain.ResourceState
	pendingFullTrailers int
	pendingFullTanks    int
	liters              int
	counts              map[domain.TripType]int
	hours               map[string]float64
	adrUsed             map[string]int
}

func newDayState(res domain.ResourceState, adrUsed map[string]int) *dayState {
	return &dayState{
		res:     res,
		counts:  make(map[domain.TripType]int),
		hours:   make(map[string]float64),
		adrUsed: adrUsed,
	}
}

func (s *dayState) charge(d *driverDay, t domain.TripType, hours float64) {
	d.hoursLeft -= hours
	s.hours[d.id] += hours
	s.counts[t]++
}

func (s *dayState) commitPending() {
	s.res.FullTrailers += s.pendingFullTrailers
	s.res.FullTanks += s.pendingFullTanks
	s.pendingFullTrailers = 0
	s.pendingFullTanks = 0
}

// applier is a guarded state transition for one trip type. can reports whether
// the guard holds for the given driver; apply performs the transition and
// charges the driver's hours. Appliers never fail: a failed guard simply means
// the caller tries the next trip type in priority order.
type applier struct {
	trip  domain.TripType
	can   func(s *dayState, d *driverDay) bool
	apply func(s *dayState, d *driverDay)
}

// tryFirst offers the driver one action, taking the first trip type in order
// whose guard holds. It reports which trip type was applied.
func tryFirst(s *dayState, d *driverDay, order []applier) (domain.TripType, bool) {
	for _, a := range order {
		if a.can(s, d) {
			a.apply(s, d)
			return a.trip, true
		}
	}
	return "", false
}

func canSupply(s *dayState, d *driverDay) bool {
	return s.res.EmptyTrailers > 0 && s.res.EmptyTanks > 0 && d.hoursLeft >= supplyHours
}

func canSupplyFromLivigno(s *dayState, d *driverDay) bool {
	// The extended trip consumes a whole day and is only allowed for a driver
	// who has not driven yet and still has ADR exception budget this window.
	return s.res.EmptyTrailers > 0 && s.res.EmptyTanks > 0 &&
		d.hoursLeft == MaxDriverHours &&
		s.adrUsed[d.id] < MaxADRExtendedPerWeek
}

func applyExtendedSupply(s *dayState, d *driverDay, staged bool) {
	s.res.EmptyTrailers--
	s.res.EmptyTanks--
	if staged {
		s.pendingFullTrailers++
		s.pendingFullTanks++
	} else {
		s.res.FullTrailers++
		s.res.FullTanks++
	}
	s.adrUsed[d.id]++
	d.hoursLeft = 0
	s.hours[d.id] += supplyFromLivignoHours
	s.counts[domain.TripSupplyFromLivigno]++
}

var supplyApplier = applier{
	trip: domain.TripSupply,
	can:  canSupply,
	apply: func(s *dayState, d *driverDay) {
		s.res.EmptyTrailers--
		s.res.EmptyTanks--
		s.pendingFullTrailers++
		s.pendingFullTanks++
		s.charge(d, domain.TripSupply, supplyHours)
	},
}

// Used during the replenishment phase: the filled trailer and tank only
// become available after the commit, like a regular SUPPLY.
var stagedExtendedSupplyApplier = applier{
	trip: domain.TripSupplyFromLivigno,
	can:  canSupplyFromLivigno,
	apply: func(s *dayState, d *driverDay) {
		applyExtendedSupply(s, d, true)
	},
}

// Used during the delivery phase, where no commit boundary follows.
var extendedSupplyApplier = applier{
	trip: domain.TripSupplyFromLivigno,
	can:  canSupplyFromLivigno,
	apply: func(s *dayState, d *driverDay) {
		applyExtendedSupply(s, d, false)
	},
}

// A driver who can still afford a full round never spends the half hour on a
// transfer: the round is guaranteed volume, while the transferred tank may be
// claimed by another driver, leaving this one stranded below the round's cost.
var transferApplier = applier{
	trip: domain.TripTransfer,
	can: func(s *dayState, d *driverDay) bool {
		return s.res.FullTrailers > 0 && s.res.EmptyTanks > 0 &&
			d.hoursLeft >= transferHours && d.hoursLeft < fullRoundHours
	},
	apply: func(s *dayState, d *driverDay) {
		s.res.FullTrailers--
		s.res.EmptyTanks--
		s.res.EmptyTrailers++
		s.res.FullTanks++
		s.charge(d, domain.TripTransfer, transferHours)
	},
}

var shuttleApplier = applier{
	trip: domain.TripShuttle,
	can: func(s *dayState, d *driverDay) bool {
		return s.res.FullTanks > 0 && d.hoursLeft >= shuttleHours
	},
	apply: func(s *dayState, d *driverDay) {
		s.res.FullTanks--
		s.res.EmptyTanks++
		s.liters += LitersPerTank
		s.charge(d, domain.TripShuttle, shuttleHours)
	},
}

var shuttleFromLivignoApplier = applier{
	trip: domain.TripShuttleFromLivigno,
	can: func(s *dayState, d *driverDay) bool {
		return s.res.FullTrailers > 0 && d.hoursLeft >= shuttleHours
	},
	apply: func(s *dayState, d *driverDay) {
		s.res.FullTrailers--
		s.res.EmptyTrailers++
		s.liters += LitersPerTank
		s.charge(d, domain.TripShuttleFromLivigno, shuttleHours)
	},
}

var fullRoundApplier = applier{
	trip: domain.TripFullRound,
	can: func(s *dayState, d *driverDay) bool {
		return d.hoursLeft >= fullRoundHours
	},
	apply: func(s *dayState, d *driverDay) {
		s.liters += LitersPerTank
		s.charge(d, domain.TripFullRound, fullRoundHours)
	},
}

// Fixed delivery-phase priority per driver pool. First matching guard wins.
// On the final day the extended supply is excluded: the stock it would create
// can no longer reach Livigno.
var (
	livignoDeliveryOrder = []applier{shuttleApplier, shuttleFromLivignoApplier, extendedSupplyApplier}
	livignoFinalDayOrder = []applier{shuttleApplier, shuttleFromLivignoApplier}
	tiranoDeliveryOrder  = []applier{shuttleApplier, transferApplier, fullRoundApplier}
)

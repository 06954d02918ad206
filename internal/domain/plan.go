package domain

// Immutable record of one simulated day: what was driven, what was delivered,
// and the resource state the day ended with. Created once per day by the
// allocator and never mutated afterward.
type DayPlan struct {
	Day             int
	TripCounts      map[TripType]int
	LitersDelivered int
	HoursUsed       map[string]float64
	Resources       ResourceState
}

// Aggregate result of a capacity simulation over a date range.
type CapacityResult struct {
	TotalLiters        int
	DayPlans           []DayPlan
	Breakdown          map[TripType]int
	DaysWithDeliveries int
}

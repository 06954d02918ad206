package domain

// Counters for the four fungible resource classes shared by a simulation run.
// The invariants FullTrailers+EmptyTrailers == total trailers and
// FullTanks+EmptyTanks == total vehicles hold at every day boundary.
// ResourceState is a value type: each simulation run owns its own copy and
// no state is shared across runs.
type ResourceState struct {
	FullTrailers  int
	EmptyTrailers int
	FullTanks     int
	EmptyTanks    int
}

// TotalTrailers returns the trailer count regardless of fill state.
func (r ResourceState) TotalTrailers() int { return r.FullTrailers + r.EmptyTrailers }

// TotalTanks returns the truck-tank count regardless of fill state.
func (r ResourceState) TotalTanks() int { return r.FullTanks + r.EmptyTanks }

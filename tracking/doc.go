// Package tracking advances simulated trains along their routes and derives
// what the dashboard shows from their positions.
//
// This package handles:
//   - Advancing a train's progress fraction by one tick (Advance)
//   - Interpolating a train's coordinates between stations (InterpolatePosition)
//   - Classifying congestion at junction nodes (ComputeCongestion)
//   - Holding the simulation State and its pure tick transition
//   - Driving ticks from a timer (Runner)
//
// The three operations above are pure and allocate fresh values; the only
// mutable state is the Runner's committed State pointer, which readers load
// atomically and must treat as read-only.
package tracking

// Package utils provides small helpers shared by the simulation packages.
//
// It contains:
//   - Great-circle distance on a spherical earth
//   - Distance formatting for display
//   - Time formatting and conversion utilities
package utils

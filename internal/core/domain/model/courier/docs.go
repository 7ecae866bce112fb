// Package courier models delivery persons: their last known position,
// availability and cash-on-delivery state.
package courier

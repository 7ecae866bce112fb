// Package order models a customer purchase and its delivery lifecycle.
//
// Lifecycle:
//
//	Pending <-> Preparing <-> ReadyForDelivery -> WaitingCourier -> Delivering -> Delivered
//	                                 ^                  |
//	                                 +---- release -----+
//
// Cancelled is reachable by the customer from Pending and Preparing, and by the restaurant
// owner from any status before pick-up. Delivered and Cancelled are terminal.
//
// All guards live in one table (transitions.go); Order methods only call Status.Apply,
// so an invalid transition can never reach persistence.
package order

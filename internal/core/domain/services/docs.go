// Package services holds dispatch logic that spans orders and delivery persons.
//
//   - CandidateSelector: finds couriers around a restaurant and ranks them
//   - OrderDispatcher: re-validates one courier against one order and assigns it
//
// Both are pure: loading aggregates, counting active orders and checking cash
// balances is done by the caller.
package services

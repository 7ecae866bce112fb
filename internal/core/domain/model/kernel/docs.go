// Package kernel holds the value objects shared by every aggregate of the dispatch domain.
//
//   - UUID: identifier of orders, restaurants, delivery persons and customers
//   - GeoPoint: WGS84 coordinate with Haversine distance in kilometres
//   - Address: street address, optionally geocoded
//   - amounts: non-negative decimal currency values (shopspring/decimal)
//
// Every value object is immutable and its zero value fails Validate.
package kernel

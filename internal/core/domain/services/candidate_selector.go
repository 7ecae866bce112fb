package services

import (
	"cmp"
	"math"
	"slices"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MaxActiveOrders is the number of WaitingCourier/Delivering orders a courier may hold.
	MaxActiveOrders = 3

	// DefaultSearchRadiusKm is used when the caller does not pass a radius.
	DefaultSearchRadiusKm = 10.0
)

// RatingProvider supplies the rating used as the second sort key.
type RatingProvider interface {
	Rating(dp *courier.DeliveryPerson) float64
}

// FixedRating rates every courier the same. There is no rating model yet.
type FixedRating float64

// DefaultRating is wired in production until real ratings exist.
const DefaultRating FixedRating = 4.5

// Rating returns r for every courier.
func (r FixedRating) Rating(*courier.DeliveryPerson) float64 {
	return float64(r)
}

// Candidate is a delivery person that survived every filter, decorated for ranking.
type Candidate struct {
	DeliveryPerson      *courier.DeliveryPerson
	DistanceKm          float64
	Rating              float64
	ActiveOrders        int
	CompletedDeliveries int
	AcceptsCOD          bool
	CashBalance         decimal.Decimal
	MaxCashLimit        decimal.Decimal
}

// CandidateFilter is an additional predicate applied after the built-in filters.
type CandidateFilter func(c Candidate) (keep bool, err error)

// CandidateSelector finds and ranks delivery persons around a restaurant.
type CandidateSelector struct {
	ratings RatingProvider
}

// NewCandidateSelector returns a selector ranking with ratings. A nil provider falls back
// to DefaultRating, which leaves distance and active orders as the effective sort keys.
//
// Example:
//
// 	selector := services.NewCandidateSelector(nil)
// 	candidates, err := selector.Select(origin, services.DefaultSearchRadiusKm, people, counts)
func NewCandidateSelector(ratings RatingProvider) CandidateSelector {
	if ratings == nil {
		ratings = DefaultRating
	}
	return CandidateSelector{ratings: ratings}
}

// Select drops couriers without a position, beyond radiusKm, unavailable or at MaxActiveOrders,
// then applies filters and sorts by distance asc, rating desc, active orders asc.
// activeOrders maps courier id to the number of their active orders; missing means zero.
func (s CandidateSelector) Select(
	origin kernel.GeoPoint,
	radiusKm float64,
	people []*courier.DeliveryPerson,
	activeOrders map[kernel.UUID]int,
	filters ...CandidateFilter,
) ([]Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(radiusKm) || radiusKm <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("radius", radiusKm, "0 (exclusive)", "+inf")
	}

	candidates := make([]Candidate, 0, len(people))
	for _, dp := range people {
		if err := dp.Validate(); err != nil {
			return nil, err
		}

		distance, located, err := dp.DistanceTo(origin)
		if err != nil {
			return nil, err
		}
		if !located || distance > radiusKm {
			continue
		}
		if !dp.IsAvailable() {
			continue
		}

		active := activeOrders[dp.ID()]
		if active >= MaxActiveOrders {
			continue
		}

		c := Candidate{
			DeliveryPerson:      dp,
			DistanceKm:          distance,
			Rating:              s.ratings.Rating(dp),
			ActiveOrders:        active,
			CompletedDeliveries: dp.CompletedDeliveries(),
			AcceptsCOD:          dp.AcceptsCOD(),
			CashBalance:         dp.Status().CashBalance(),
			MaxCashLimit:        dp.Status().MaxCashLimit(),
		}

		keep, err := applyFilters(c, filters)
		if err != nil {
			return nil, err
		}
		if keep {
			candidates = append(candidates, c)
		}
	}

	SortCandidates(candidates)
	return candidates, nil
}

// SortCandidates orders candidates by distance asc, rating desc, active orders asc.
func SortCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ActiveOrders, b.ActiveOrders)
	})
}

func applyFilters(c Candidate, filters []CandidateFilter) (bool, error) {
	for _, f := range filters {
		keep, err := f(c)
		if err != nil || !keep {
			return false, err
		}
	}
	return true, nil
}

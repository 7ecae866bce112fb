package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRetryPendingAssignmentsCommandIsNotConstructed = errors.New(
	"RetryPendingAssignmentsCommand must be created via NewRetryPendingAssignmentsCommand constructor",
)

// RetryPendingAssignmentsCommand retries automatic assignment for orders that have been
// waiting in ReadyForDelivery for at least minAge.
type RetryPendingAssignmentsCommand struct {
	minAge    time.Duration
	batchSize int
	radiusKm  float64
	guard     guard.ConstructorGuard
}

// NewRetryPendingAssignmentsCommand sweeps at most batchSize orders that entered
// ReadyForDelivery more than minAge ago. minAge may be zero.
func NewRetryPendingAssignmentsCommand(minAge time.Duration, batchSize int) (RetryPendingAssignmentsCommand, error) {
	var ageErr, batchErr error
	if minAge < 0 {
		ageErr = errs.NewValueIsOutOfRangeError("min age", minAge, 0, "+inf")
	}
	if batchSize <= 0 {
		batchErr = errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "+inf")
	}
	if err := errors.Join(ageErr, batchErr); err != nil {
		return RetryPendingAssignmentsCommand{}, err
	}

	return RetryPendingAssignmentsCommand{
		minAge:    minAge,
		batchSize: batchSize,
		radiusKm:  services.DefaultSearchRadiusKm,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RetryPendingAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrRetryPendingAssignmentsCommandIsNotConstructed)
}

func (c RetryPendingAssignmentsCommand) MinAge() time.Duration { return c.minAge }
func (c RetryPendingAssignmentsCommand) BatchSize() int        { return c.batchSize }

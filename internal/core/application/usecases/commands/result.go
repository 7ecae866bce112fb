package commands

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrorCode is the machine-readable reason of a failed Result.
type ErrorCode string

const (
	CodeOrderNotFound              ErrorCode = "ORDER_NOT_FOUND"
	CodeRestaurantNotFound         ErrorCode = "RESTAURANT_NOT_FOUND"
	CodeDeliveryPersonNotFound     ErrorCode = "DELIVERY_PERSON_NOT_FOUND"
	CodeInvalidOrderStatus         ErrorCode = "INVALID_ORDER_STATUS"
	CodeInvalidOperation           ErrorCode = "INVALID_OPERATION"
	CodeDeliveryPersonNotAvailable ErrorCode = "DELIVERY_PERSON_NOT_AVAILABLE"
	CodeMaxOrdersExceeded          ErrorCode = "MAX_ORDERS_EXCEEDED"
	CodeCODNotAccepted             ErrorCode = "COD_NOT_ACCEPTED"
	CodeInsufficientCashCapacity   ErrorCode = "INSUFFICIENT_CASH_CAPACITY"
	CodeRestaurantAddressMissing   ErrorCode = "RESTAURANT_ADDRESS_MISSING"
	CodeNoAvailableDeliveryPersons ErrorCode = "NO_AVAILABLE_DELIVERY_PERSONS"
	CodeAssignmentInProgress       ErrorCode = "ASSIGNMENT_IN_PROGRESS"
	CodeForbidden                  ErrorCode = "FORBIDDEN"
	CodeValidationError            ErrorCode = "VALIDATION_ERROR"
	CodeInternalError              ErrorCode = "INTERNAL_ERROR"
)

// Result is returned by every command handler. Expected failures set Success to false
// and carry an ErrorCode; Handle never returns them as errors.
type Result struct {
	Success   bool
	Message   string
	ErrorCode ErrorCode

	OrderID          kernel.UUID
	RestaurantID     kernel.UUID
	DeliveryPersonID *kernel.UUID
	PreviousStatus   order.Status
	Status           order.Status
	DistanceKm       float64
	CashBalance      *decimal.Decimal
}

func succeeded(message string) Result {
	return Result{Success: true, Message: message}
}

func failed(code ErrorCode, message string) Result {
	return Result{Success: false, ErrorCode: code, Message: message}
}

// failure converts err into a failed Result. Errors without a known code are logged
// and reported as INTERNAL_ERROR.
func failure(ctx context.Context, logger *slog.Logger, operation string, err error) Result {
	if code, ok := codeOf(err); ok {
		return failed(code, err.Error())
	}

	logger.ErrorContext(ctx, "unexpected failure", "operation", operation, "error", err)
	return failed(CodeInternalError, "internal error")
}

func codeOf(err error) (ErrorCode, bool) {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		switch notFound.ParamName {
		case "order":
			return CodeOrderNotFound, true
		case "restaurant":
			return CodeRestaurantNotFound, true
		case "delivery person":
			return CodeDeliveryPersonNotFound, true
		}
	}

	switch {
	case errors.Is(err, ErrForbidden), errors.Is(err, order.ErrNotAssignedDeliveryPerson):
		return CodeForbidden, true
	case errors.Is(err, order.ErrTransitionNotAllowed):
		return CodeInvalidOrderStatus, true
	case errors.Is(err, order.ErrStatusNotOwnerSettable):
		return CodeInvalidOperation, true
	case errors.Is(err, services.ErrDeliveryPersonNotAvailable):
		return CodeDeliveryPersonNotAvailable, true
	case errors.Is(err, services.ErrMaxActiveOrdersReached):
		return CodeMaxOrdersExceeded, true
	case errors.Is(err, services.ErrCODNotAccepted):
		return CodeCODNotAccepted, true
	case errors.Is(err, services.ErrInsufficientCashCapacity):
		return CodeInsufficientCashCapacity, true
	case errors.Is(err, restaurant.ErrAddressMissing):
		return CodeRestaurantAddressMissing, true
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return CodeValidationError, true
	}

	return "", false
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger.With("component", "commands")
}

package http

import (
	"errors"
	"net/http"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ResultResponse struct {
	Success          bool             `json:"success"`
	Message          string           `json:"message,omitempty"`
	ErrorCode        string           `json:"error_code,omitempty"`
	OrderID          string           `json:"order_id,omitempty"`
	RestaurantID     string           `json:"restaurant_id,omitempty"`
	DeliveryPersonID *string          `json:"delivery_person_id,omitempty"`
	PreviousStatus   string           `json:"previous_status,omitempty"`
	Status           string           `json:"status,omitempty"`
	DistanceKm       *float64         `json:"distance_km,omitempty"`
	CashBalance      *decimal.Decimal `json:"cash_balance,omitempty"`
}

type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Options    []string        `json:"options"`
}

type OrderResponse struct {
	ID               string              `json:"id"`
	RestaurantID     string              `json:"restaurant_id"`
	CustomerID       string              `json:"customer_id"`
	DeliveryPersonID *string             `json:"delivery_person_id"`
	Status           string              `json:"status"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	DeliveryFee      decimal.Decimal     `json:"delivery_fee"`
	Tax              decimal.Decimal     `json:"tax"`
	Total            decimal.Decimal     `json:"total"`
	DeliveryAddress  AddressRequest      `json:"delivery_address"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentStatus    string              `json:"payment_status"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Items            []OrderItemResponse `json:"items"`
}

type AvailableDeliveryPersonResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone"`
	Latitude            float64         `json:"latitude"`
	Longitude           float64         `json:"longitude"`
	LocationUpdatedAt   time.Time       `json:"location_updated_at"`
	DistanceKm          float64         `json:"distance_km"`
	Rating              float64         `json:"rating"`
	ActiveOrders        int             `json:"active_orders"`
	CompletedDeliveries int             `json:"completed_deliveries"`
	AcceptsCOD          bool            `json:"accepts_cod"`
	CashBalance         decimal.Decimal `json:"cash_balance"`
	MaxCashLimit        decimal.Decimal `json:"max_cash_limit"`
}

// statusFor maps a failed Result to an HTTP status.
func statusFor(code commands.ErrorCode) int {
	switch code {
	case commands.CodeOrderNotFound, commands.CodeRestaurantNotFound, commands.CodeDeliveryPersonNotFound:
		return http.StatusNotFound
	case commands.CodeForbidden:
		return http.StatusForbidden
	case commands.CodeValidationError:
		return http.StatusBadRequest
	case commands.CodeAssignmentInProgress:
		return http.StatusConflict
	case commands.CodeInvalidOrderStatus,
		commands.CodeInvalidOperation,
		commands.CodeDeliveryPersonNotAvailable,
		commands.CodeMaxOrdersExceeded,
		commands.CodeCODNotAccepted,
		commands.CodeInsufficientCashCapacity,
		commands.CodeRestaurantAddressMissing,
		commands.CodeNoAvailableDeliveryPersons:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorResponse{Code: code, Message: message})
}

func badRequest(c echo.Context, err error) error {
	return errorJSON(c, http.StatusBadRequest, string(commands.CodeValidationError), err.Error())
}

func forbidden(c echo.Context) error {
	return errorJSON(c, http.StatusForbidden, string(commands.CodeForbidden), commands.ErrForbidden.Error())
}

// respond writes a command outcome. err is only set for an unconstructed command.
func respond(c echo.Context, successStatus int, result commands.Result, err error) error {
	if err != nil {
		c.Logger().Error(err)
		return errorJSON(c, http.StatusInternalServerError, string(commands.CodeInternalError), "internal error")
	}

	status := successStatus
	if !result.Success {
		status = statusFor(result.ErrorCode)
	}
	return c.JSON(status, toResultResponse(result))
}

// queryError maps query failures; queries return plain errors instead of Results.
func queryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, restaurant.ErrAddressMissing):
		return errorJSON(c, http.StatusUnprocessableEntity, string(commands.CodeRestaurantAddressMissing), err.Error())
	default:
		c.Logger().Error(err)
		return errorJSON(c, http.StatusInternalServerError, string(commands.CodeInternalError), "internal error")
	}
}

func toResultResponse(r commands.Result) ResultResponse {
	resp := ResultResponse{
		Success:     r.Success,
		Message:     r.Message,
		ErrorCode:   string(r.ErrorCode),
		CashBalance: r.CashBalance,
	}
	if !r.OrderID.IsZero() {
		resp.OrderID = r.OrderID.String()
	}
	if !r.RestaurantID.IsZero() {
		resp.RestaurantID = r.RestaurantID.String()
	}
	if r.DeliveryPersonID != nil {
		id := r.DeliveryPersonID.String()
		resp.DeliveryPersonID = &id
	}
	if r.PreviousStatus.Validate() == nil {
		resp.PreviousStatus = r.PreviousStatus.String()
	}
	if r.Status.Validate() == nil {
		resp.Status = r.Status.String()
	}
	if r.DistanceKm > 0 {
		distance := r.DistanceKm
		resp.DistanceKm = &distance
	}
	return resp
}

func toOrderResponse(v queries.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:           v.ID.String(),
		RestaurantID: v.RestaurantID.String(),
		CustomerID:   v.CustomerID.String(),
		Status:       v.Status.String(),
		Subtotal:     v.Subtotal,
		DeliveryFee:  v.DeliveryFee,
		Tax:          v.Tax,
		Total:        v.Total,
		DeliveryAddress: AddressRequest{
			Street:    v.Street,
			City:      v.City,
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
		},
		PaymentMethod:    v.PaymentMethod.String(),
		PaymentStatus:    v.PaymentStatus.String(),
		EstimatedMinutes: v.EstimatedMinutes,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
		Items:            make([]OrderItemResponse, 0, len(v.Items)),
	}
	if v.DeliveryPersonID != nil {
		id := v.DeliveryPersonID.String()
		resp.DeliveryPersonID = &id
	}
	for _, item := range v.Items {
		options := item.Options
		if options == nil {
			options = []string{}
		}
		resp.Items = append(resp.Items, OrderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Options:    options,
		})
	}
	return resp
}

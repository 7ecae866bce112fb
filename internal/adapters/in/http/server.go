// Package http exposes the order lifecycle and courier assignment over REST.
//
// Every route under /api/v1 requires a bearer JWT whose "sub" claim is the user id
// and whose "role" claim is one of customer, owner, delivery or admin.
package http

import (
	"context"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type commandHandler[C any] interface {
	Handle(ctx context.Context, command C) (commands.Result, error)
}

type queryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	CreateOrder          commandHandler[commands.CreateOrderCommand]
	UpdateOrderStatus    commandHandler[commands.UpdateOrderStatusCommand]
	CancelOrder          commandHandler[commands.CancelOrderCommand]
	AssignNearest        commandHandler[commands.AssignNearestDeliveryPersonCommand]
	ManualAssign         commandHandler[commands.ManualAssignDeliveryPersonCommand]
	ReleaseAssignment    commandHandler[commands.ReleaseOrderAssignmentCommand]
	PickUpOrder          commandHandler[commands.PickUpOrderCommand]
	DeliverOrder         commandHandler[commands.DeliverOrderCommand]
	CreateDeliveryPerson commandHandler[commands.CreateDeliveryPersonCommand]
	UpdateLocation       commandHandler[commands.UpdateDeliveryPersonLocationCommand]
	SettleCashBalance    commandHandler[commands.SettleCashBalanceCommand]
	CreateRestaurant     commandHandler[commands.CreateRestaurantCommand]
	GetOrder             queryHandler[queries.GetOrderQuery, queries.OrderView]
	GetActiveOrders      queryHandler[queries.GetActiveOrdersQuery, []queries.OrderView]
	GetAvailableCouriers queryHandler[queries.GetAvailableDeliveryPersonsQuery, []queries.AvailableDeliveryPersonResponse]
}

// Server maps HTTP requests to command and query handlers.
type Server struct {
	h         Handlers
	jwtSecret []byte
}

// NewServer verifies bearer tokens with the HS256 key jwtSecret.
func NewServer(handlers Handlers, jwtSecret []byte) *Server {
	return &Server{h: handlers, jwtSecret: jwtSecret}
}

// NewEcho builds the echo instance with validation, middleware and all routes.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	s.RegisterRoutes(e)
	return e
}

// RegisterRoutes mounts /health and the authenticated /api/v1 group on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", Authenticate(s.jwtSecret))

	api.POST("/restaurants", s.CreateRestaurant)
	api.GET("/restaurants/:id/delivery-persons/available", s.GetAvailableDeliveryPersons)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/assign", s.AssignDeliveryPerson)
	api.POST("/orders/:id/release", s.ReleaseOrderAssignment)
	api.POST("/orders/:id/pickup", s.PickUpOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)

	api.POST("/delivery-persons", s.CreateDeliveryPerson)
	api.PUT("/delivery-persons/:id/location", s.UpdateDeliveryPersonLocation)
	api.POST("/delivery-persons/:id/settlements", s.SettleCashBalance)
}

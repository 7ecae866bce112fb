package http

import (
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	cmd, err := newCreateOrderCommand(actorFrom(c), req)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusCreated, result, err)
}

func newCreateOrderCommand(actor commands.Actor, req CreateOrderRequest) (commands.CreateOrderCommand, error) {
	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		menuItemID, idErr := kernel.UUIDFromString(it.MenuItemID)
		if idErr != nil {
			return commands.CreateOrderCommand{}, idErr
		}
		item, itemErr := order.NewLineItem(menuItemID, it.Name, it.Quantity, it.UnitPrice, it.Options)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	address, err := req.DeliveryAddress.toAddress()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		actor,
		restaurantID,
		items,
		order.Charges{DeliveryFee: req.DeliveryFee, Tax: req.Tax},
		address,
		method,
		req.EstimatedMinutes,
	)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(c, err)
	}

	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return queryError(c, err)
	}

	actor := actorFrom(c)
	if !view.IsVisibleTo(actor.ID(), string(actor.Role())) {
		return forbidden(c)
	}
	return c.JSON(http.StatusOK, toOrderResponse(view))
}

// GetActiveOrders handles GET /api/v1/orders. Results are scoped to the caller's role;
// owners and admins may narrow them with ?restaurant_id=.
func (s *Server) GetActiveOrders(c echo.Context) error {
	actor := actorFrom(c)
	actorID := actor.ID()

	var scope queries.ActiveOrdersScope
	switch actor.Role() {
	case commands.RoleCustomer:
		scope.CustomerID = &actorID
	case commands.RoleOwner:
		scope.RestaurantOwner = &actorID
	case commands.RoleDeliveryPerson:
		scope.DeliveryPersonID = &actorID
	}

	if raw := c.QueryParam("restaurant_id"); raw != "" {
		restaurantID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(c, err)
		}
		scope.RestaurantID = &restaurantID
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, err)
		}
		limit = parsed
	}

	query, err := queries.NewGetActiveOrdersQuery(scope, limit)
	if err != nil {
		return badRequest(c, err)
	}

	views, err := s.h.GetActiveOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return queryError(c, err)
	}

	response := make([]OrderResponse, len(views))
	for i, v := range views {
		response[i] = toOrderResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req UpdateOrderStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actorFrom(c), orderID, target)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewCancelOrderCommand(actorFrom(c), orderID)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

// AssignDeliveryPerson handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignDeliveryPerson(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req AssignRequest
	if err = bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	ctx := c.Request().Context()
	if req.DeliveryPersonID == "" {
		cmd, cmdErr := commands.NewAssignNearestDeliveryPersonCommand(actorFrom(c), orderID, req.RadiusKm)
		if cmdErr != nil {
			return badRequest(c, cmdErr)
		}
		result, handleErr := s.h.AssignNearest.Handle(ctx, cmd)
		return respond(c, http.StatusOK, result, handleErr)
	}

	deliveryPersonID, err := kernel.UUIDFromString(req.DeliveryPersonID)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewManualAssignDeliveryPersonCommand(actorFrom(c), orderID, deliveryPersonID)
	if err != nil {
		return badRequest(c, err)
	}
	result, err := s.h.ManualAssign.Handle(ctx, cmd)
	return respond(c, http.StatusOK, result, err)
}

// ReleaseOrderAssignment handles POST /api/v1/orders/:id/release.
func (s *Server) ReleaseOrderAssignment(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewReleaseOrderAssignmentCommand(actorFrom(c), orderID)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.ReleaseAssignment.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

// PickUpOrder handles POST /api/v1/orders/:id/pickup.
func (s *Server) PickUpOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewPickUpOrderCommand(actorFrom(c), orderID)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.PickUpOrder.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	cmd, err := commands.NewDeliverOrderCommand(actorFrom(c), orderID)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.DeliverOrder.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/core/ports"
	"github.com/ordersuite/order-system/internal/query"
)

// OrderHandler handles HTTP requests for the order service.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create validates the item list against the declared total and stores a
// new order owned by the caller.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}

	order, err := h.service.Create(c.Request().Context(), claims, ports.CreateOrderInput{
		Items:       items,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return OK(c, http.StatusCreated, order)
}

// ListOwn returns the caller's orders through the shared query pipeline.
func (h *OrderHandler) ListOwn(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	params := query.ParseParams(c.QueryParams(), "status")
	result, err := h.service.ListOwn(c.Request().Context(), claims, params)
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, echo.Map{
		"orders":     result.Items,
		"pagination": result.Pagination,
	})
}

// ListAll returns every order. Admin only; the service enforces it through
// the policy table as well.
func (h *OrderHandler) ListAll(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	params := query.ParseParams(c.QueryParams(), "status", "userId")
	result, err := h.service.ListAll(c.Request().Context(), claims, params)
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, echo.Map{
		"orders":     result.Items,
		"pagination": result.Pagination,
	})
}

// Get returns a single order, ownership-gated.
func (h *OrderHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), claims, c.Param("orderId"))
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, order)
}

// UpdateStatus runs the lifecycle state machine on the order.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        orderId  path      string                    true  "Order id"
// @Param        body     body      updateOrderStatusRequest  true  "Requested status"
// @Success      200      {object}  Envelope
// @Failure      403      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Failure      422      {object}  Envelope
// @Router       /orders/{orderId}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		return domain.Validation("unknown status", map[string]string{"status": req.Status})
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), claims, c.Param("orderId"), status)
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, order)
}

// Delete removes an order, role- and state-gated.
func (h *OrderHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, c.Param("orderId")); err != nil {
		return err
	}
	return OK(c, http.StatusOK, echo.Map{"message": "order deleted"})
}

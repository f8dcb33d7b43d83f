package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/app/services"
	"vendora/pkg/bind"
	"vendora/pkg/logger"
	"vendora/pkg/response"
	"vendora/pkg/validate"
)

// OrderController handles order placement and lookup.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create handles POST /api/order.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	order, err := c.orders.Create(r.Context(), in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create order failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Order has successfully added", order)
}

// Get handles GET /api/order/{orderId}.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	order, err := c.orders.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		logger.WithCtx(r.Context()).Error("get order failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Order fetched successfully", order)
}

// All handles GET /api/order.
func (c *OrderController) All(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list orders failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "All Order fetch successfully", orders)
}

// ByUser handles GET /api/order/user/{userId}. An empty result is reported
// as not found.
func (c *OrderController) ByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list user orders failed", "error", err)
		response.Internal(w)
		return
	}
	if len(orders) == 0 {
		response.NotFound(w, "No orders found for this user")
		return
	}

	response.Success(w, "Orders fetched successfully", orders)
}

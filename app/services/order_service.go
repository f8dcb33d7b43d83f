package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/app/models"
	"vendora/app/repositories"
)

// OrderStore is the slice of the order repository the order workflows need.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.OrderDetail, error)
	All(ctx context.Context) ([]models.OrderDetail, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error)
}

// OrderService implements order placement and lookup.
type OrderService struct {
	orders OrderStore
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// Create places an order with a fresh transaction id and returns it with the
// ordering user resolved. A transaction id collision surfaces as a write
// error from the unique index; it is not retried.
func (s *OrderService) Create(ctx context.Context, in models.OrderInput) (models.OrderDetail, error) {
	userID, err := primitive.ObjectIDFromHex(in.User)
	if err != nil {
		return models.OrderDetail{}, repositories.ErrNotFound
	}

	now := time.Now().UTC()
	order := models.Order{
		Price:           *in.Price,
		DiscountPrice:   in.DiscountPrice,
		User:            userID,
		Payment:         in.Payment,
		ShippingAddress: in.ShippingAddress,
		TransactionID:   models.NewTransactionID(),
		PaymentTnxID:    in.PaymentTnxID,
		Date:            now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		return models.OrderDetail{}, err
	}
	return s.orders.FindByID(ctx, order.ID)
}

// Get looks up one order. A malformed id behaves like a missing one.
func (s *OrderService) Get(ctx context.Context, id string) (models.OrderDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.OrderDetail{}, repositories.ErrNotFound
	}
	return s.orders.FindByID(ctx, oid)
}

// All lists every order with users resolved.
func (s *OrderService) All(ctx context.Context) ([]models.OrderDetail, error) {
	return s.orders.All(ctx)
}

// ByUser lists one user's orders. The caller decides how to report an empty
// result. A malformed user id yields an empty list.
func (s *OrderService) ByUser(ctx context.Context, userID string) ([]models.OrderDetail, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []models.OrderDetail{}, nil
	}
	return s.orders.FindByUser(ctx, oid)
}

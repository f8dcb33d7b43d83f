package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vendora/app/models"
	"vendora/pkg/database"
	"vendora/pkg/metrics"
)

// lookupUser resolves an order's user reference into userDoc, projected to
// name and email.
var lookupUser = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.M{
		"from": "users",
		"let":  bson.M{"userId": "$user"},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$userId"}}}},
			bson.M{"$project": bson.M{"name": 1, "email": 1}},
		},
		"as": "userDoc",
	}}},
	{{Key: "$unwind", Value: bson.M{
		"path":                       "$userDoc",
		"preserveNullAndEmptyArrays": true,
	}}},
}

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) col() *mongo.Collection {
	return database.Collection("orders")
}

// Create inserts a new order and fills in the generated id.
// Returns ErrDuplicate when the transaction id collides.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveQuery("orders", "insertOne", time.Now())

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.col().InsertOne(ctx, order)
	return mapErr(err)
}

// FindByID looks up an order by object id with its user resolved.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.OrderDetail, error) {
	defer metrics.ObserveQuery("orders", "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, lookupUser...)

	orders, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return models.OrderDetail{}, err
	}
	if len(orders) == 0 {
		return models.OrderDetail{}, ErrNotFound
	}
	return orders[0], nil
}

// All lists every order with users resolved.
func (r *OrderRepository) All(ctx context.Context) ([]models.OrderDetail, error) {
	defer metrics.ObserveQuery("orders", "aggregate", time.Now())

	return r.aggregate(ctx, lookupUser)
}

// FindByUser lists the orders placed by one user, with the user resolved.
func (r *OrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error) {
	defer metrics.ObserveQuery("orders", "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
	}
	pipeline = append(pipeline, lookupUser...)

	return r.aggregate(ctx, pipeline)
}

func (r *OrderRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.OrderDetail, error) {
	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	orders := []models.OrderDetail{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, mapErr(err)
	}
	return orders, nil
}

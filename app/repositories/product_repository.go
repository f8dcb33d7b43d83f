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

// lookupCategory resolves a product's category reference into categoryDoc.
var lookupCategory = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.M{
		"from":         "categories",
		"localField":   "category",
		"foreignField": "_id",
		"as":           "categoryDoc",
	}}},
	{{Key: "$unwind", Value: bson.M{
		"path":                       "$categoryDoc",
		"preserveNullAndEmptyArrays": true,
	}}},
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) col() *mongo.Collection {
	return database.Collection("products")
}

// All lists every product with its category resolved.
func (r *ProductRepository) All(ctx context.Context) ([]models.ProductDetail, error) {
	defer metrics.ObserveQuery("products", "aggregate", time.Now())

	cur, err := r.col().Aggregate(ctx, lookupCategory)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	products := []models.ProductDetail{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, mapErr(err)
	}
	return products, nil
}

// FindByID looks up a product by object id with its category resolved.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.ProductDetail, error) {
	defer metrics.ObserveQuery("products", "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, lookupCategory...)

	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return models.ProductDetail{}, mapErr(err)
	}
	defer cur.Close(ctx)

	var products []models.ProductDetail
	if err := cur.All(ctx, &products); err != nil {
		return models.ProductDetail{}, mapErr(err)
	}
	if len(products) == 0 {
		return models.ProductDetail{}, ErrNotFound
	}
	return products[0], nil
}

// FindByCategory lists the products referencing one category.
func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Product, error) {
	defer metrics.ObserveQuery("products", "find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{"category": categoryID})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, mapErr(err)
	}
	return products, nil
}

// Create inserts a new product and fills in the generated id.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveQuery("products", "insertOne", time.Now())

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	_, err := r.col().InsertOne(ctx, product)
	return mapErr(err)
}

// Replace overwrites an existing product document.
func (r *ProductRepository) Replace(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveQuery("products", "replaceOne", time.Now())

	res, err := r.col().ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("products", "deleteOne", time.Now())

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

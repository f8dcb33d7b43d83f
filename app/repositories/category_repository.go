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

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) col() *mongo.Collection {
	return database.Collection("categories")
}

// AllWithCounts lists every category joined with the number of products
// referencing it. Counts are computed live on each call.
func (r *CategoryRepository) AllWithCounts(ctx context.Context) ([]models.CategoryWithCount, error) {
	defer metrics.ObserveQuery("categories", "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "category",
			"as":           "products",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"productCount": bson.M{"$size": "$products"},
		}}},
		{{Key: "$project", Value: bson.M{"products": 0}}},
	}

	cur, err := r.col().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	categories := []models.CategoryWithCount{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, mapErr(err)
	}
	return categories, nil
}

// All lists every category without counts.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	defer metrics.ObserveQuery("categories", "find", time.Now())

	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, mapErr(err)
	}
	return categories, nil
}

// FindByID looks up a category by object id.
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	defer metrics.ObserveQuery("categories", "findOne", time.Now())

	var category models.Category
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	return category, mapErr(err)
}

// Create inserts a new category. Returns ErrDuplicate when the name exists.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	defer metrics.ObserveQuery("categories", "insertOne", time.Now())

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.col().InsertOne(ctx, category)
	return mapErr(err)
}

// Rename updates a category's name.
func (r *CategoryRepository) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	defer metrics.ObserveQuery("categories", "updateOne", time.Now())

	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. Products keep their category reference.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("categories", "deleteOne", time.Now())

	res, err := r.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

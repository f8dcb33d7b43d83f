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

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// col is resolved per call so constructing a repository never requires an
// open connection.
func (r *UserRepository) col() *mongo.Collection {
	return database.Collection("users")
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveQuery("users", "findOne", time.Now())

	var user models.User
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, mapErr(err)
}

// FindByID looks up a user by object id.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	defer metrics.ObserveQuery("users", "findOne", time.Now())

	var user models.User
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, mapErr(err)
}

// Create inserts a new user and fills in the generated id.
// Returns ErrDuplicate when the email is already taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveQuery("users", "insertOne", time.Now())

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.col().InsertOne(ctx, user)
	return mapErr(err)
}

// SetVerified marks a user's email address as verified.
func (r *UserRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("users", "updateOne", time.Now())

	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"verified": true}})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPassword stores a new password hash and marks the user verified, since
// only the mailbox owner can complete a reset.
func (r *UserRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	defer metrics.ObserveQuery("users", "updateOne", time.Now())

	res, err := r.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"password": hash, "verified": true},
	})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

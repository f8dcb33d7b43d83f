package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendora/config"
	"vendora/pkg/auth"
)

func init() {
	Register("categories", SeedCategories)
	Register("admin_user", SeedAdminUser)
}

// SeedCategories upserts a starter set of categories so a fresh install has
// something to attach products to.
func SeedCategories(ctx context.Context, db *mongo.Database) error {
	names := []string{"Rings", "Necklaces", "Earrings", "Bracelets"}

	col := db.Collection("categories")
	for _, name := range names {
		_, err := col.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$setOnInsert": bson.M{"name": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// SeedAdminUser upserts the administrator account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured. Skipped silently otherwise.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	email := config.Get("ADMIN_EMAIL", "")
	password := config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": bson.M{
			"name":     config.Get("ADMIN_NAME", "Administrator"),
			"email":    email,
			"password": hash,
			"role":     "admin",
			"verified": true,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

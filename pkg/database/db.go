// Package database owns the MongoDB client for the process.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendora/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of calling log.Fatal so the caller can shut
// down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	return nil
}

// DB returns the application database handle.
func DB() *mongo.Database {
	if db == nil {
		panic("database: Connect has not been called")
	}
	return db
}

// Collection returns a collection from the application database.
func Collection(name string) *mongo.Collection {
	return DB().Collection(name)
}

// Disconnect closes the client. Call on shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

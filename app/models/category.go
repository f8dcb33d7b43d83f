package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a document in the "categories" collection. Names are unique.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CategoryWithCount is a category joined with the number of products that
// reference it. Produced by the listing aggregation, never stored.
type CategoryWithCount struct {
	Category     `bson:",inline"`
	ProductCount int `bson:"productCount" json:"productCount"`
}

// CategoryProducts groups a category name with its products for the
// products-by-category listing.
type CategoryProducts struct {
	Category string    `bson:"category" json:"category"`
	Products []Product `bson:"products" json:"products"`
}

// CategoryInput is the request body for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

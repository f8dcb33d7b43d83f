package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a document in the "products" collection. ImageURL is the public
// URL of the uploaded image; Category references a category document.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title          string             `bson:"title" json:"title"`
	Price          float64            `bson:"price" json:"price"`
	DiscountPrice  *float64           `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	ImageURL       string             `bson:"imageUrl" json:"imageUrl"`
	Description    string             `bson:"description" json:"description"`
	Features       string             `bson:"features" json:"features"`
	Tags           []string           `bson:"tags" json:"tags"`
	Category       primitive.ObjectID `bson:"category" json:"category"`
	WhatsappNumber string             `bson:"whatsappNumber,omitempty" json:"whatsappNumber,omitempty"`
	TelegramNumber string             `bson:"telegramNumber,omitempty" json:"telegramNumber,omitempty"`
}

// ProductDetail is a product with its category document resolved. The outer
// Category field shadows the embedded ObjectID in JSON output.
type ProductDetail struct {
	Product  `bson:",inline"`
	Category *Category `bson:"categoryDoc,omitempty" json:"category"`
}

// AddProductInput carries the fields of a product create request. The image
// arrives as a multipart file and is stored before validation, so ImageURL
// holds the stored key here.
type AddProductInput struct {
	Title          string   `json:"title" validate:"required,min=1,max=255"`
	Price          *float64 `json:"price" validate:"required,min=0"`
	DiscountPrice  *float64 `json:"discountPrice" validate:"nullable,min=0,lt_field=price"`
	ImageURL       string   `json:"imageUrl" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Features       string   `json:"features" validate:"required"`
	Tags           []string `json:"tags" validate:"required,each_min=1,each_max=255"`
	Category       string   `json:"category" validate:"required,objectid"`
	WhatsappNumber string   `json:"whatsappNumber" validate:"nullable"`
	TelegramNumber string   `json:"telegramNumber" validate:"nullable"`
}

// UpdateProductInput carries a partial product update. Absent fields leave
// the stored value unchanged.
type UpdateProductInput struct {
	Title          string   `json:"title" validate:"nullable,min=1,max=255"`
	Price          *float64 `json:"price" validate:"nullable,min=0"`
	DiscountPrice  *float64 `json:"discountPrice" validate:"nullable,min=0"`
	ImageURL       string   `json:"imageUrl" validate:"nullable"`
	Description    string   `json:"description" validate:"nullable"`
	Features       string   `json:"features" validate:"nullable"`
	Tags           []string `json:"tags" validate:"nullable,each_min=1,each_max=255"`
	Category       string   `json:"category" validate:"nullable,objectid"`
	WhatsappNumber string   `json:"whatsappNumber" validate:"nullable"`
	TelegramNumber string   `json:"telegramNumber" validate:"nullable"`
}

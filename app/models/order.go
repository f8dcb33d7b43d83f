package models

import (
	"crypto/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingAddress is the embedded delivery contact on an order. The same
// struct validates the request body and stores the document.
type ShippingAddress struct {
	FirstName   string `bson:"firstName" json:"firstName" validate:"required"`
	LastName    string `bson:"lastName" json:"lastName" validate:"required"`
	Email       string `bson:"email" json:"email" validate:"required,email"`
	Address     string `bson:"address,omitempty" json:"address,omitempty" validate:"nullable"`
	PhoneNumber string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty" validate:"nullable"`
}

// Order is a document in the "orders" collection. TransactionID is a random
// 8-character handle generated at creation; PaymentTnxID is the reference the
// payment provider returned.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Price           float64            `bson:"price" json:"price"`
	DiscountPrice   *float64           `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Payment         string             `bson:"payment" json:"payment"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	TransactionID   string             `bson:"transactionId" json:"transactionId"`
	PaymentTnxID    string             `bson:"paymentTnxID" json:"paymentTnxID"`
	Date            time.Time          `bson:"date" json:"date"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// OrderUser is the slim projection of the ordering user returned alongside
// an order.
type OrderUser struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// OrderDetail is an order with its user resolved to name and email. The
// outer User field shadows the embedded ObjectID in JSON output.
type OrderDetail struct {
	Order `bson:",inline"`
	User  *OrderUser `bson:"userDoc,omitempty" json:"user"`
}

// OrderInput is the request body for POST /api/order.
type OrderInput struct {
	Price           *float64        `json:"price" validate:"required,min=0"`
	DiscountPrice   *float64        `json:"discountPrice" validate:"nullable,min=0,lt_field=price"`
	User            string          `json:"user" validate:"required,objectid"`
	Payment         string          `json:"payment" validate:"required"`
	PaymentTnxID    string          `json:"paymentTnxID" validate:"required"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

const transactionIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewTransactionID returns a random 8-character alphanumeric order handle.
// Uniqueness is enforced by the index on orders.transactionId.
func NewTransactionID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = transactionIDChars[int(b)%len(transactionIDChars)]
	}
	return string(buf)
}

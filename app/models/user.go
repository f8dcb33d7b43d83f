package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User roles.
const (
	RoleCustomer  = "customer"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// User is the account document stored in the "users" collection.
// Password holds the bcrypt hash and is never serialised.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name     string               `bson:"name" json:"name"`
	Email    string               `bson:"email" json:"email"`
	Password string               `bson:"password" json:"-"`
	Role     string               `bson:"role" json:"role"`
	Verified bool                 `bson:"verified" json:"verified"`
	Phone    string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender   string               `bson:"gender,omitempty" json:"gender,omitempty"`
	Orders   []primitive.ObjectID `bson:"orders,omitempty" json:"orders,omitempty"`
}

// SignupInput is the request body for POST /api/auth/signup.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,min=1,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
	Phone    string `json:"phone" validate:"nullable,min=1,max=255"`
	Gender   string `json:"gender" validate:"nullable,in=Male,Female,Other"`
}

// LoginInput is the request body for POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

// ForgotPasswordInput is the request body for POST /api/auth/forgot-password.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,min=5,max=255,email"`
}

// ResetPasswordInput is the request body for POST /api/auth/reset-password/{token}.
type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=5,max=255"`
}

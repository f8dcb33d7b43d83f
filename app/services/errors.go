// Package services holds the business workflows between the HTTP controllers
// and the repositories. Services return the sentinel errors below; the
// controllers own the client-facing wording and status codes.
package services

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("services: invalid email or password")

	// ErrAlreadyRegistered is returned when a signup email is taken.
	ErrAlreadyRegistered = errors.New("services: user already registered")

	// ErrEmailNotVerified is returned by login for an unverified account
	// when SIGNUP_VERIFICATION is enabled.
	ErrEmailNotVerified = errors.New("services: email not verified")

	// ErrEmailNotFound is returned by the password-reset request when no
	// account matches the email.
	ErrEmailNotFound = errors.New("services: no user with this email")

	// ErrInvalidToken is returned when an email or reset token fails
	// verification, is expired, or references a deleted user.
	ErrInvalidToken = errors.New("services: invalid token")

	// ErrInvalidCategory is returned when a product update references a
	// category that does not exist.
	ErrInvalidCategory = errors.New("services: invalid category")

	// ErrDiscountPrice is returned when a merged product update would leave
	// the discount price at or above the price.
	ErrDiscountPrice = errors.New("services: discount price must be less than price")
)

package service

import "errors"

// Sentinel errors the HTTP layer maps onto response statuses.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken means a user with that email already exists.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden means the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation marks a rejected request payload; wrap it with the
	// field detail.
	ErrValidation = errors.New("validation failed")
	// ErrCartEmpty rejects checkout of an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
)

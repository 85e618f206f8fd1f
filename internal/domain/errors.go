package domain

import "errors"

var (
	// Journal errors
	ErrJournalNotFound = errors.New("journal not found")
	ErrNotJournalOwner = errors.New("journal belongs to another user")

	// Trade errors
	ErrTradeNotFound   = errors.New("trade not found")
	ErrFutureTradeDate = errors.New("cannot log trades on a future date")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrUserInactive = errors.New("user account is inactive")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

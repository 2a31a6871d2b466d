package errors

import (
	"errors"
)

var (
	ErrEmailOrPhoneRequired = errors.New("email or phone number is required")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrInvalidLastDays      = errors.New("last days must not be negative")
)

package commons

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicateRecord     = errors.New("record already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired session token")
)

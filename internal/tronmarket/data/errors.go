package data

import "errors"

var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrOrderNotPending           = errors.New("order is not pending")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
)

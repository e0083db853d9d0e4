package service

import "errors"

var (
	ErrValidation        = errors.New("invalid request")
	ErrInvalidOrderState = errors.New("invalid order state")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrTransferFailed    = errors.New("transfer failed")
	ErrUnauthorized      = errors.New("unauthorized")
)

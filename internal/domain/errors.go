package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidExemption = errors.New("invalid exemption")
	ErrSlotsExhausted   = errors.New("slots exhausted")
)

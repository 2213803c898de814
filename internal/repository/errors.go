package repository

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrCapacityExceeded = errors.New("ticket quantity cap exceeded for this flight")
	ErrNoRowsAffected   = errors.New("no rows affected")
)

package store

import "errors"

var (
	// ErrVersionConflict: update không match version hiện tại (optimistic lock)
	ErrVersionConflict = errors.New("record was modified concurrently")
	ErrRowNotFound     = errors.New("record to update does not exist")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrColumnMismatch  = errors.New("record columns and values differ in length")
)

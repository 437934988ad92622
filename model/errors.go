package model

import "errors"

var (
	// ErrResourceUnavailable marks an inventory lookup that produced no descriptor
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrMalformedCatalog marks a catalog payload that does not have the expected shape
	ErrMalformedCatalog = errors.New("malformed catalog payload")

	// ErrInvalidInput marks unusable input entries or configuration values
	ErrInvalidInput = errors.New("invalid input")
)

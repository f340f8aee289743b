package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrSampleNotFound = errors.New("sample not found")
	ErrUnknownFormat  = errors.New("unknown export format")
)

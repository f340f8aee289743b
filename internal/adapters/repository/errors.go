package repository

import "errors"

// Sentinel kinds for score store errors.
var (
	ErrStorage = errors.New("score store failure")
)

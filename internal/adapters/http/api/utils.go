// Package api declares HTTP contracts and route registration helpers.
package api

import "time"

// This file contains common types and utilities for the API package.
// Most helper functions live in http.go to avoid circular dependencies.

// timeFormat is the wire format for timestamps in API responses.
const timeFormat = time.RFC3339

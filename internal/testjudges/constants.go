package testjudges

import "time"

// HTTP status code constants.
const (
	StatusOK      = 200
	StatusCreated = 201
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	// Writes are synchronous, so the settle delay only covers gauge refresh.
	SettleDelay          = 2 * time.Second
	PercentageMultiplier = 100
)

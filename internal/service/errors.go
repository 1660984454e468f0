package service

import "errors"

// Service errors. The messages are shown verbatim to the end user, so
// they read as display text rather than Go error strings.
var (
	// Validation errors, detected before any write
	ErrAmountNotPositive = errors.New("Amount must be greater than 0")
	ErrProofRequired     = errors.New("Payment screenshot is required for deposits")
	ErrBalanceRequired   = errors.New("walletBalance is required")

	// ErrUserNotFound means the referenced user does not exist in the store
	ErrUserNotFound = errors.New("User not found")
)

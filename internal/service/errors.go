package service

import "errors"

// --- Error Definitions ---
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrTokensDisabled   = errors.New("token issuing is disabled")
	ErrTokenGeneration  = errors.New("failed to generate authentication token")
	ErrExportDisabled   = errors.New("log export is disabled")
)

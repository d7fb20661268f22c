package auth

import "errors"

// Token validation errors. The API middleware matches on these to decide
// between "expired" and "invalid" responses; everything else stays a 401.
var (
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once a token's exp claim has passed,
	// beyond the configured clock-skew leeway.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned for a token whose nbf claim lies
	// in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken is returned when no token accompanies a request
	// that requires one.
	ErrMissingToken = errors.New("authentication token is missing")
)

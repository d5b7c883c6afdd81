package genimg

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image provider unavailable: %v", e.Err)
	}
	return "image provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidImage indicates the provider responded without a usable image
// payload (empty data, undecodable base64, no candidates).
type ErrInvalidImage struct {
	Err error
}

func (e *ErrInvalidImage) Error() string {
	return fmt.Sprintf("invalid image response: %v", e.Err)
}

func (e *ErrInvalidImage) Unwrap() error { return e.Err }

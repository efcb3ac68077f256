package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrNotYourKiss means someone other than the proposal's target clicked
	// an answer button.
	ErrNotYourKiss = errors.New("proposal is addressed to another member")

	// ErrNoGifAvailable means the kiss GIF catalog is empty.
	ErrNoGifAvailable = errors.New("no gif available")
)

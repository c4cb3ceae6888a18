package domain

import "errors"

// ErrSessionNotFound is the one recoverable condition: callers can tell the
// user to restart instead of reporting a generic failure. The others are
// opaque pipeline failures carrying their cause in the wrapped message.
var (
	ErrImageFetch        = errors.New("image fetch failed")
	ErrBadModelOutput    = errors.New("malformed model output")
	ErrClassification    = errors.New("classification failed")
	ErrDescriptionUpdate = errors.New("description update failed")
	ErrSynthesis         = errors.New("image synthesis failed")
	ErrSessionNotFound   = errors.New("session not found")
)

package apperror

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionNotStarted = errors.New("session is not started")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnknownStorage    = errors.New("unknown storage type")
)

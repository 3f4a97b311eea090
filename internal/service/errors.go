package service

import "errors"

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidRequest   = errors.New("message is required")
	ErrInvalidSessionId = errors.New("invalid session id")
	ErrSessionNotFound  = errors.New("chat session not found")
	ErrPlanNotFound     = errors.New("subscription plan not found")
	ErrOrderNotFound    = errors.New("checkout session not found")
	ErrInvalidSignature = errors.New("invalid notification signature")
)

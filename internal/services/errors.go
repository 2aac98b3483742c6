package services

import "errors"

var (
	// ErrValidation wraps anything the caller got wrong - handlers map it to 400
	ErrValidation = errors.New("validation failed")

	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session expired")
	ErrProviderUnavailable = errors.New("identity provider is not configured")
	ErrExchangeFailed      = errors.New("identity exchange failed")

	// errNoChapters means the generated payload parsed but had nothing usable
	errNoChapters = errors.New("generated course has no usable chapters")
	errNoLessons  = errors.New("generated chapter detail has no usable lessons")
)

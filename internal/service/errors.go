package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoClasses means a class selection matched no active class.
	ErrNoClasses   = errors.New("no classes match the selection")
	ErrUserBlocked = errors.New("user is blocked")
	// ErrAgentFailed wraps LLM failures while answering a teacher.
	ErrAgentFailed = errors.New("agent failed")
)

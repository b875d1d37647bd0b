package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrModuleNotFound    = errors.New("training module not found")
	ErrModuleLocked      = errors.New("training module locked by prerequisites")
	ErrNoActiveScenario  = errors.New("no scenario loaded for the current step")
	ErrGenerationPending = errors.New("a scenario request is already in flight")
)

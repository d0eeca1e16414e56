package ecs

import "errors"

// Registry errors. Every failure is a caller-side precondition violation and is
// returned before any index is touched.
var (
	ErrUnknownIdentifier    = errors.New("ecs: unknown identifier")
	ErrCompositionMismatch  = errors.New("ecs: composition mismatch")
	ErrDuplicateGroupName   = errors.New("ecs: duplicate group name")
	ErrInvalidConfiguration = errors.New("ecs: invalid configuration")
	ErrMembershipViolation  = errors.New("ecs: membership violation")
)

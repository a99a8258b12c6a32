package stat

import "errors"

// All of these mark programmer errors: callers are expected to fix the
// call site, not to recover at runtime.
var (
	ErrNilModifier      = errors.New("modifier is nil")
	ErrNilStat          = errors.New("stat is nil")
	ErrDuplicateTag     = errors.New("modifier tag already registered")
	ErrModifierNotFound = errors.New("modifier not registered")
	ErrTagNotFound      = errors.New("modifier tag not registered")
	ErrInvalidRange     = errors.New("min range exceeds max range")
	ErrDuplicateStat    = errors.New("stat id already registered")
	ErrStatNotFound     = errors.New("stat id not registered")
)

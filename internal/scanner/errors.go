package scanner

import "errors"

var (
	// ErrNoTokens is returned by every query on a scanner built from an empty token slice.
	ErrNoTokens = errors.New("no tokens were provided")
	// ErrMalformed is returned when a declaration or member never terminates.
	ErrMalformed = errors.New("malformed declaration")
	// ErrNotFound is returned when a member lookup by name has no match.
	ErrNotFound = errors.New("member not found")
	// ErrInvalidArgument is returned when an index does not reference a member of the requested kind.
	ErrInvalidArgument = errors.New("invalid member reference")
	// ErrScannerType is returned when a requested sub-scanner cannot be built.
	ErrScannerType = errors.New("scanner type does not implement MethodScanner")
)

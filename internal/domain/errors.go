package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Submission validation rejections (expected, user-caused)
	ErrMsgAlreadySubmitted = "score is already submitted"
	ErrMsgConvertMap       = "score is a convert"
	ErrMsgDisallowedMod    = "score contains disallowed mods"
	ErrMsgCustomRate       = "rate mod uses a non-default speed"
	ErrMsgAFKScore         = "accuracy below the AFK threshold"

	// Malformed input (data-caused)
	ErrMsgMalformedMap = "map has no notes"

	// Shop errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgUpgradeMaxed      = "upgrade is already at max level"
	ErrMsgUpgradeNotFound   = "upgrade not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Submission validation rejections. These are expected outcomes, reported
	// per-score; they never abort batch processing.
	ErrAlreadySubmitted = errors.New(ErrMsgAlreadySubmitted)
	ErrConvertMap       = errors.New(ErrMsgConvertMap)
	ErrDisallowedMod    = errors.New(ErrMsgDisallowedMod)
	ErrCustomRate       = errors.New(ErrMsgCustomRate)
	ErrAFKScore         = errors.New(ErrMsgAFKScore)

	// Malformed input errors abort the single score with a diagnostic.
	ErrMalformedMap = errors.New(ErrMsgMalformedMap)

	// Shop errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrUpgradeMaxed      = errors.New(ErrMsgUpgradeMaxed)
	ErrUpgradeNotFound   = errors.New(ErrMsgUpgradeNotFound)
)

// IsValidationRejection reports whether err is an expected per-score
// validation rejection rather than an infrastructure or data failure.
func IsValidationRejection(err error) bool {
	return errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrConvertMap) ||
		errors.Is(err, ErrDisallowedMod) ||
		errors.Is(err, ErrCustomRate) ||
		errors.Is(err, ErrAFKScore)
}

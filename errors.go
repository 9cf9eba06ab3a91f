package lasso

import "errors"

var (
	// ErrInvalidParameter is returned when a caller violates a precondition,
	// e.g. an odd log_M or an out-of-range lookup index. It is always
	// surfaced to the caller, never silently corrected.
	ErrInvalidParameter = errors.New("lasso: invalid parameter")

	// ErrVerificationFailed is returned when a proof fails any of the
	// verifier's checks. It is a normal negative result; a failed
	// verification fails identically on retry unless the inputs change.
	ErrVerificationFailed = errors.New("lasso: proof verification failed")
)

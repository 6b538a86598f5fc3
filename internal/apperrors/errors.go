package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPeriodClosed indicates a posting or void against a closed or locked
// fiscal period. Reopening the period makes the operation retryable.
var ErrPeriodClosed = errors.New("fiscal period is not open")

// ErrInvalidTransition indicates an illegal lifecycle transition, such as
// posting a non-draft entry, voiding a non-posted entry, or reopening a
// locked period.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrConflict indicates a concurrent write conflict from the store. Nothing
// was committed; the whole operation is safe to retry from scratch.
var ErrConflict = errors.New("transaction conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

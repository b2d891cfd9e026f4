package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a transient storage conflict (serialization failure,
// deadlock, or a lost race on a unique counter). Callers retry a bounded
// number of times before surfacing it.
var ErrConflict = errors.New("storage conflict")

// ErrNegativeBalance indicates that committing an entry would drive an
// account balance below zero. The whole entry is rejected.
var ErrNegativeBalance = errors.New("account balance would become negative")

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConflict)
}

package session

import "errors"

// FatalError marks an unrecoverable environment condition: no attachable
// session, an unresponsive page, a lost audit trail. Leaf components never
// exit the process; they return errors and the single exit point in main
// maps fatal ones to exit code 1.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return "fatal: " + e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// Fatal wraps err as fatal, idempotently.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	var f *FatalError
	if errors.As(err, &f) {
		return err
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err carries a FatalError.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}

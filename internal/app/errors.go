package app

import "errors"

// kinder is implemented by every error in the engine's taxonomy.
type kinder interface {
	error
	ErrorKind() string
}

// ErrorKind classifies an error into the taxonomy the CLI exposes:
// validation_error, consistency_error, render_error or io_error. Anything
// unclassified is an io_error, the catch-all for collaborator failures.
func ErrorKind(err error) string {
	var k kinder
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return "io_error"
}

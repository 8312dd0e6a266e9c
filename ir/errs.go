package ir

import "errors"

// Error taxonomy shared by the loader, parser and encoder. Callers
// match categories with errors.Is; every wrapped error carries a
// descriptive message and, where available, the originating path.
var (
	ErrIO                = errors.New("io error")
	ErrParse             = errors.New("parse error")
	ErrEncoding          = errors.New("encoding error")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedSecret   = errors.New("undefined secret")
)

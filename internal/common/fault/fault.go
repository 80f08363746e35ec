// Released under an MIT license. See LICENSE.

// Package fault provides weft's failure condition: a message anchored to
// a source location. Lexing, parsing and evaluation all abort with one of
// these; the driver formats it and exits non-zero.
package fault

import (
	"fmt"

	"github.com/weftlang/weft/internal/common/struct/loc"
)

// T (fault) is a positioned failure.
type T struct {
	Source loc.T
	Msg    string
}

type fault = T

// New creates a fault at source with the message msg.
func New(source *loc.T, msg string) *T {
	f := &fault{Msg: msg}

	if source != nil {
		f.Source = *source
	}

	return f
}

// Newf creates a fault at source, formatting the message with fmt.Sprintf.
func Newf(source *loc.T, format string, args ...interface{}) *T {
	return New(source, fmt.Sprintf(format, args...))
}

func (f *fault) Error() string {
	return f.Msg
}

// Message returns err's text without location decoration.
func Message(err error) string {
	if f, ok := err.(*fault); ok {
		return f.Msg
	}

	return err.Error()
}

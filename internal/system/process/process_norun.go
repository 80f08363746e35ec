// Released under an MIT license. See LICENSE.

//go:build norun

package process

import (
	"errors"
)

// Available reports whether subprocess execution was compiled in.
const Available = false

var errDisabled = errors.New("subprocess execution disabled")

// Run always fails when built with the norun tag.
func Run(command string) (string, int, error) {
	return "", -1, errDisabled
}

// Pipe always fails when built with the norun tag.
func Pipe(command, input string) (string, int, error) {
	return "", -1, errDisabled
}

// Released under an MIT license. See LICENSE.

//go:build !norun

// Package process runs host-shell commands for the run and pipe
// intrinsics. Building with the norun tag compiles these out.
package process

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
)

// Available reports whether subprocess execution was compiled in.
const Available = true

// Run passes command to the host shell and captures its standard
// output. At most one trailing newline is trimmed. The subprocess
// shares weft's standard error.
func Run(command string) (string, int, error) {
	return run(command, "")
}

// Pipe is Run with input supplied on the subprocess's standard input.
func Pipe(command, input string) (string, int, error) {
	return run(command, input)
}

func run(command, input string) (string, int, error) {
	cmd := exec.Command("sh", "-c", command)

	out := &bytes.Buffer{}

	cmd.Stdout = out
	cmd.Stderr = os.Stderr

	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	err := cmd.Run()

	captured := strings.TrimSuffix(out.String(), "\n")

	if err != nil {
		if exit, ok := err.(*exec.ExitError); ok {
			return captured, exit.ExitCode(), nil
		}

		return captured, -1, err
	}

	return captured, 0, nil
}

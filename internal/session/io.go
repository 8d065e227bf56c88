package session

import (
	"bufio"
	"fmt"
	"io"
)

// IO is the interaction surface of a session. The terminal
// implementation below is deliberately plain; tests script sessions
// through the same interface.
type IO interface {
	// Prompt shows a prompt and reads one line of input. An error
	// (including io.EOF on user exit) abandons the session.
	Prompt(prompt string) (string, error)
	// Say writes a formatted message followed by a newline
	Say(format string, args ...interface{})
}

// Terminal reads from and writes to the attached console
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal creates a terminal IO over the given streams
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// Prompt writes the prompt and reads a line
func (t *Terminal) Prompt(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return t.in.Text(), nil
}

// Say writes a formatted line
func (t *Terminal) Say(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

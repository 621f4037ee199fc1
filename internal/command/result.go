package command

import "fmt"

// Result is the outcome of one command execution: either the captured
// stdout of a completed process, or a human-readable failure message.
// The text is what the chat audience ultimately sees.
type Result struct {
	OK   bool
	Text string
}

// Success wraps captured output.
func Success(text string) Result {
	return Result{OK: true, Text: text}
}

// Failure wraps an error message destined for the chat audience.
func Failure(text string) Result {
	return Result{OK: false, Text: text}
}

func (r Result) String() string {
	if r.OK {
		return fmt.Sprintf("Success(%s)", r.Text)
	}
	return fmt.Sprintf("Failure(%s)", r.Text)
}

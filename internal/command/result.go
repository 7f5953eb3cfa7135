package command

import (
	"fmt"
	"io"

	"github.com/B3RT1337/lookup-bot/internal/output"
)

// Result is the uniform outcome of a command.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}

// WriteText renders the message as plain terminal text.
func (r Result) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, output.HTMLToText(r.Message))
	return err
}

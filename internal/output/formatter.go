package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format is the output format requested by the user.
type Format string

// Output format constants supported by the --output flag.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats lists every supported output format, for validation and shell completion.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON)}
}

// TextFormattable results know how to render themselves as terminal text.
type TextFormattable interface {
	WriteText(w io.Writer) error
}

// Write dispatches a result to the appropriate formatter.
// JSON uses json.Encoder with indentation. Text requires the result to implement TextFormattable.
func Write(w io.Writer, format Format, result any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatText:
		tf, ok := result.(TextFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support text output", result)
		}
		return tf.WriteText(w)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

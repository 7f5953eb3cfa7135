package output_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3RT1337/lookup-bot/internal/output"
)

type textResult struct {
	Value string `json:"value"`
}

func (r textResult) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, r.Value+"\n")
	return err
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatJSON, textResult{Value: "x"}))
	assert.Equal(t, "{\n  \"value\": \"x\"\n}\n", buf.String())
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatText, textResult{Value: "hello"}))
	assert.Equal(t, "hello\n", buf.String())
}

func TestWrite_TextUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := output.Write(&buf, output.FormatText, struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support text output")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := output.Write(io.Discard, output.Format("xml"), textResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json"}, output.Formats())
}

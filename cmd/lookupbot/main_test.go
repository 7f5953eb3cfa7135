package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := "--config=" + filepath.Join(t.TempDir(), "config.yaml")

	err := run(context.Background(), []string{"lookupbot", cfg, "version"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "lookupbot version")
}

func TestRun_UnknownSubcommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"lookupbot", "frobnicate"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
}

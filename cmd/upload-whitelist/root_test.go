package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RequiresFile(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"file"`)
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--file", "list.csv", "extra"})

	require.Error(t, cmd.Execute())
}

func TestRootCmd_ConnectionFailureAbortsBeforeReadingFile(t *testing.T) {
	t.Setenv("MONGODB_CONNECT_TIMEOUT", "300ms")

	// The file does not exist: a connection failure must be reported first.
	missing := filepath.Join(t.TempDir(), "missing.csv")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", missing, "--db", "mongodb://127.0.0.1:1/voting-app"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to MongoDB")
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(context.Background(), out, out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(context.Background(), out, out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// No positional argument at all.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, out, nil)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr, "a missing input should surface as an ExitError")
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, out.String(), "Usage:", "Expected usage text alongside the error")
}

func TestRun_InputDoesNotExist(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntactically fine input path that is simply absent. App construction
	// should fail with a plain error rather than panicking.
	missing := filepath.Join(t.TempDir(), "no-such-mod")
	args := []string{missing}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, out, args)

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "input path does not exist")
}

package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyCommand_Text(t *testing.T) {
	out, err := runCLI(t, "classify", "Pathogenic variant associated with disease")
	require.NoError(t, err)
	assert.Equal(t, "pathogenic", strings.TrimSpace(out))
}

func TestClassifyCommand_Tokens(t *testing.T) {
	out, err := runCLI(t, "classify", "--tokens", "Benign", "reviewed")
	require.NoError(t, err)
	assert.Equal(t, "benign", strings.TrimSpace(out))
}

func TestClassifyCommand_Default(t *testing.T) {
	out, err := runCLI(t, "classify", "no recognizable signal here")
	require.NoError(t, err)
	assert.Equal(t, "predicted", strings.TrimSpace(out))
}

func TestClassifyCommand_RequiresArgs(t *testing.T) {
	_, err := runCLI(t, "classify")
	assert.Error(t, err)
}

func TestCacheClear_DisabledIsNoop(t *testing.T) {
	// Cache is disabled by default; clearing must not create a store file.
	t.Chdir(t.TempDir())

	out, err := runCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "disabled")

	_, err = os.Stat("data")
	assert.True(t, os.IsNotExist(err))
}

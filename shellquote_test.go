package subprocrun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShellEscapeLeavesSimpleArgsUnquoted(t *testing.T) {
	require.Equal(t, "ls", shellEscape("ls"))
	require.Equal(t, "-la", shellEscape("-la"))
}

func TestShellEscapeQuotesArgsWithSpaces(t *testing.T) {
	require.Equal(t, "'hello world'", shellEscape("hello world"))
}

func TestShellEscapeHandlesEmbeddedSingleQuotes(t *testing.T) {
	require.Equal(t, `'it'\''s'`, shellEscape("it's"))
}

func TestShellEscapeArgvJoinsWithSpaces(t *testing.T) {
	got := shellEscapeArgv([]string{"git", "commit", "-m", "fix bug"})
	require.Equal(t, "git commit -m 'fix bug'", got)
}

func TestShellEscapeEmptyString(t *testing.T) {
	require.Equal(t, "''", shellEscape(""))
}

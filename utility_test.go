package subprocrun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommandArgsSplitsOnSpacesAndQuotes(t *testing.T) {
	got := ParseCommandArgs(`git commit -m "fix bug" --author='me'`)
	require.Equal(t, []string{"git", "commit", "-m", "fix bug", "--author=", "me"}, got)
}

func TestParseCommandArgsCollapsesRepeatedSpaces(t *testing.T) {
	got := ParseCommandArgs("a   b")
	require.Equal(t, []string{"a", "b"}, got)
}

func TestDevNullReturnsSameFile(t *testing.T) {
	require.Same(t, DevNull(), DevNull())
}

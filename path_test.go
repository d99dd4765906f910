package subprocrun

import (
	"testing"

	"github.com/gospawn/subprocrun/internal/abspath"
	"github.com/stretchr/testify/require"
)

type fakeFileSystem struct {
	executables map[string]bool
	wd          abspath.AbsolutePath
}

func (f *fakeFileSystem) IsExecutableFile(path string) bool { return f.executables[path] }
func (f *fakeFileSystem) Getwd() (abspath.AbsolutePath, error) { return f.wd, nil }

func TestResolveAbsolutePathIsUsedVerbatim(t *testing.T) {
	fs := &fakeFileSystem{executables: map[string]bool{}}
	r := NewPathResolver(fs)

	got, ok := r.Resolve("/usr/bin/env", nil)
	require.True(t, ok)
	require.Equal(t, "/usr/bin/env", got.PathString())
}

func TestResolveRelativeMultiComponentAgainstWorkingDirectory(t *testing.T) {
	wd := abspath.MustNew("/home/user")
	fs := &fakeFileSystem{
		executables: map[string]bool{"/home/user/bin/tool": true},
		wd:          wd,
	}
	r := NewPathResolver(fs)

	got, ok := r.Resolve("bin/tool", &wd)
	require.True(t, ok)
	require.Equal(t, "/home/user/bin/tool", got.PathString())
}

func TestResolveBareNameSearchesPath(t *testing.T) {
	t.Setenv("PATH", "/opt/bin:/usr/bin")
	fs := &fakeFileSystem{
		executables: map[string]bool{"/usr/bin/tool": true},
		wd:          abspath.MustNew("/home/user"),
	}
	r := NewPathResolver(fs)

	got, ok := r.Resolve("tool", nil)
	require.True(t, ok)
	require.Equal(t, "/usr/bin/tool", got.PathString())
}

func TestResolveBareNameMissingReturnsFalse(t *testing.T) {
	t.Setenv("PATH", "/opt/bin")
	fs := &fakeFileSystem{executables: map[string]bool{}, wd: abspath.MustNew("/home/user")}
	r := NewPathResolver(fs)

	_, ok := r.Resolve("nope", nil)
	require.False(t, ok)
}

func TestResolveBareNameMemoizesAgainstProcessCWD(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	calls := 0
	fs := &countingFileSystem{
		fakeFileSystem: fakeFileSystem{
			executables: map[string]bool{"/usr/bin/tool": true},
			wd:          abspath.MustNew("/home/user"),
		},
		calls: &calls,
	}
	r := NewPathResolver(fs)

	_, _ = r.Resolve("tool", nil)
	_, _ = r.Resolve("tool", nil)

	require.Equal(t, 1, calls)
}

type countingFileSystem struct {
	fakeFileSystem
	calls *int
}

func (f *countingFileSystem) IsExecutableFile(path string) bool {
	*f.calls++
	return f.fakeFileSystem.IsExecutableFile(path)
}

package subprocrun

import (
	"os"

	"github.com/gospawn/subprocrun/internal/abspath"
)

// FileSystem is the injected filesystem-probing capability PathResolver
// consumes: whether a candidate path is an executable file, and what the
// process's current working directory is. Kept as an interface so tests can
// inject a fake filesystem without touching disk.
type FileSystem interface {
	IsExecutableFile(path string) bool
	Getwd() (abspath.AbsolutePath, error)
}

// osFileSystem is the default FileSystem, backed by the real OS.
type osFileSystem struct{}

func (osFileSystem) IsExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return isExecutableMode(info)
}

func (osFileSystem) Getwd() (abspath.AbsolutePath, error) {
	wd, err := os.Getwd()
	if err != nil {
		return abspath.AbsolutePath{}, err
	}
	return abspath.New(wd)
}

// DefaultFileSystem is the FileSystem PathResolver uses unless a caller
// injects its own via NewPathResolver.
var DefaultFileSystem FileSystem = osFileSystem{}

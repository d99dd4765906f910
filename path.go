package subprocrun

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gospawn/subprocrun/internal/abspath"
)

// PathResolver resolves argv[0] to an absolute executable path, memoizing
// lookups that were made relative to the process's own current working
// directory. It is safe for concurrent use.
type PathResolver struct {
	fs FileSystem

	mu    sync.Mutex
	cache map[string]*abspath.AbsolutePath
}

// NewPathResolver builds a PathResolver backed by fs. Passing nil uses
// DefaultFileSystem.
func NewPathResolver(fs FileSystem) *PathResolver {
	if fs == nil {
		fs = DefaultFileSystem
	}
	return &PathResolver{
		fs:    fs,
		cache: make(map[string]*abspath.AbsolutePath),
	}
}

// defaultPathResolver is the package-wide resolver ProcessHandle.Launch uses
// when the caller does not supply its own, matching spec.md's "process-wide"
// memoization table.
var defaultPathResolver = NewPathResolver(nil)

// Resolve locates program, trying in order: absolute path, multi-component
// relative path against workingDirectory (or the process CWD), then PATH
// search. It returns the zero AbsolutePath and false when nothing was
// found; it never errors.
// Absence is reported as a missing value, per spec.md §4.1.
func (r *PathResolver) Resolve(program string, workingDirectory *abspath.AbsolutePath) (abspath.AbsolutePath, bool) {
	if filepath.IsAbs(program) {
		ap, err := abspath.New(program)
		if err != nil {
			return abspath.AbsolutePath{}, false
		}
		return ap, true
	}

	components := strings.Split(filepath.ToSlash(program), "/")
	if len(components) >= 2 {
		return r.resolveRelative(program, workingDirectory)
	}

	return r.resolveBareName(program, workingDirectory)
}

func (r *PathResolver) resolveRelative(program string, workingDirectory *abspath.AbsolutePath) (abspath.AbsolutePath, bool) {
	base, err := r.baseDirectory(workingDirectory)
	if err != nil {
		return abspath.AbsolutePath{}, false
	}

	candidate := base.Join(program)
	if !r.fs.IsExecutableFile(candidate.PathString()) {
		return abspath.AbsolutePath{}, false
	}
	return candidate, true
}

func (r *PathResolver) resolveBareName(program string, workingDirectory *abspath.AbsolutePath) (abspath.AbsolutePath, bool) {
	useCache := r.usesProcessCWD(workingDirectory)

	if useCache {
		r.mu.Lock()
		defer r.mu.Unlock()

		if cached, ok := r.cache[program]; ok {
			if cached == nil {
				return abspath.AbsolutePath{}, false
			}
			return *cached, true
		}
	}

	found, ok := r.searchPath(program)

	if useCache {
		if ok {
			r.cache[program] = &found
		} else {
			r.cache[program] = nil
		}
	}

	return found, ok
}

func (r *PathResolver) searchPath(program string) (abspath.AbsolutePath, bool) {
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		dirPath, err := abspath.New(dir)
		if err != nil {
			continue
		}
		candidate := dirPath.Join(program)
		if r.fs.IsExecutableFile(candidate.PathString()) {
			return candidate, true
		}
	}
	return abspath.AbsolutePath{}, false
}

func (r *PathResolver) baseDirectory(workingDirectory *abspath.AbsolutePath) (abspath.AbsolutePath, error) {
	if workingDirectory != nil {
		return *workingDirectory, nil
	}
	wd, err := r.fs.Getwd()
	if err != nil {
		return abspath.AbsolutePath{}, wrapf(err, "resolving process working directory")
	}
	return wd, nil
}

// usesProcessCWD reports whether workingDirectory is nil or equal to the
// process's actual current working directory, the cache-eligibility test
// from spec.md §3/§4.1.
func (r *PathResolver) usesProcessCWD(workingDirectory *abspath.AbsolutePath) bool {
	if workingDirectory == nil {
		return true
	}
	cwd, err := r.fs.Getwd()
	if err != nil {
		return false
	}
	return cwd.PathString() == workingDirectory.PathString()
}

package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned for targets that resolve outside the sink directory.
var ErrOutsideDirectory = errors.New("sink: path is outside the output directory")

// pathGuard confines file targets to one directory.
type pathGuard struct {
	dir string
}

func newPathGuard(dir string) (*pathGuard, error) {
	if dir == "" {
		return nil, fmt.Errorf("sink: output directory cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("sink: failed to resolve directory: %w", err)
	}
	return &pathGuard{dir: filepath.Clean(abs)}, nil
}

// cleanName strips anything from a document filename that could address a
// different directory. Separators become underscores and NUL bytes are dropped.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

// resolve returns the absolute target for name inside the directory.
func (g *pathGuard) resolve(name string) (string, error) {
	clean := cleanName(name)
	if clean == "" {
		return "", fmt.Errorf("sink: invalid filename %q", name)
	}
	target := filepath.Join(g.dir, clean)
	ok, err := g.within(target)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrOutsideDirectory, name)
	}
	return target, nil
}

// within reports whether path lies inside the directory, following a
// symlink at path and in the directory itself.
func (g *pathGuard) within(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("sink: failed to resolve path: %w", err)
	}
	abs = filepath.Clean(abs)

	real := abs
	if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			real = resolved
		}
	}

	dirs := []string{g.dir}
	if resolved, err := filepath.EvalSymlinks(g.dir); err == nil && resolved != g.dir {
		dirs = append(dirs, resolved)
	}

	inside := func(p string) bool {
		for _, d := range dirs {
			if strings.HasPrefix(p, d+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}
	return inside(abs) && inside(real), nil
}

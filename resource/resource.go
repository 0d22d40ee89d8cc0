package resource

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

var ErrNotFound = errors.New("resource not found")

//go:embed static
var bundled embed.FS

// Provider resolves request paths into contents. Implementations must be safe for
// concurrent use.
type Provider interface {
	// Resolve returns the contents of the resource. If there's no such resource,
	// ErrNotFound is returned.
	Resolve(path string) ([]byte, error)
}

// FS is a Provider backed by a file system. Paths are resolved relatively to its root,
// so nothing outside it is reachable.
type FS struct {
	fsys fs.FS
}

func NewFS(fsys fs.FS) FS {
	return FS{fsys: fsys}
}

// Bundled returns the provider of embedded static resources.
func Bundled() FS {
	sub, err := fs.Sub(bundled, "static")
	if err != nil {
		// the directory is embedded, so it's always there
		panic(err)
	}

	return NewFS(sub)
}

// Dir returns a provider serving the directory. Empty root means Bundled.
func Dir(root string) (FS, error) {
	if len(root) == 0 {
		return Bundled(), nil
	}

	info, err := os.Stat(root)
	if err != nil {
		return FS{}, fmt.Errorf("static root: %w", err)
	}

	if !info.IsDir() {
		return FS{}, fmt.Errorf("static root: %s is not a directory", root)
	}

	return NewFS(os.DirFS(root)), nil
}

func (f FS) Resolve(p string) ([]byte, error) {
	name, ok := clean(p)
	if !ok {
		return nil, ErrNotFound
	}

	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		// missing files, directories and unreadable files are not resources
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return data, nil
}

// clean turns a request path into an fs.FS name. The root itself isn't a resource.
func clean(p string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if len(name) == 0 {
		return "", false
	}

	return name, fs.ValidPath(name)
}

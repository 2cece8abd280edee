package probe

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FS performs the filesystem probes inside a working directory. Every file
// or folder it creates is removed before the probe returns.
type FS struct {
	dir string
}

// NewFS returns an FS rooted at dir. An empty dir means the current directory.
func NewFS(dir string) *FS {
	if dir == "" {
		dir = "."
	}
	return &FS{dir: dir}
}

// Dir returns the working directory.
func (f *FS) Dir() string {
	return f.dir
}

// PathWritable reports whether the current user may write to path.
func (f *FS) PathWritable(path string) bool {
	if path == "" {
		return false
	}
	return pathWritable(f.resolve(path))
}

// CreateTempFolder creates and removes a uniquely named folder.
func (f *FS) CreateTempFolder() bool {
	dir, err := os.MkdirTemp(f.dir, ".installcheck-dir-")
	if err != nil {
		slog.Debug("folder probe failed", slog.String("dir", f.dir), slog.String("error", err.Error()))
		return false
	}
	if err := os.Remove(dir); err != nil {
		slog.Warn("failed to remove probe folder", slog.String("path", dir), slog.String("error", err.Error()))
	}
	return true
}

// CreateTempFile creates and removes a uniquely named file.
func (f *FS) CreateTempFile() bool {
	fh, err := os.CreateTemp(f.dir, ".installcheck-file-")
	if err != nil {
		slog.Debug("file probe failed", slog.String("dir", f.dir), slog.String("error", err.Error()))
		return false
	}
	name := fh.Name()
	_ = fh.Close()
	if err := os.Remove(name); err != nil {
		slog.Warn("failed to remove probe file", slog.String("path", name), slog.String("error", err.Error()))
	}
	return true
}

// CreateSymlink creates link pointing at target. A relative link is placed
// in the working directory; target is stored as given.
func (f *FS) CreateSymlink(target, link string) bool {
	if err := os.Symlink(target, f.resolve(link)); err != nil {
		slog.Debug("symlink probe failed", slog.String("link", link), slog.String("error", err.Error()))
		return false
	}
	return true
}

// Remove deletes path, relative to the working directory when not absolute.
func (f *FS) Remove(path string) error {
	return os.Remove(f.resolve(path))
}

func (f *FS) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.dir, path)
}

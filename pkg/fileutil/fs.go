package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts over the real filesystem and an embedded one so the
// loaders do not care where game data comes from.
type FileSystem interface {
	// Open opens a file, ignoring filename case.
	Open(name string) (fs.File, error)
	// ReadFile reads a whole file, ignoring filename case.
	ReadFile(name string) ([]byte, error)
	// ReadDir lists a directory.
	ReadDir(name string) ([]fs.DirEntry, error)
	// BasePath returns the root all relative names resolve against.
	BasePath() string
	// IsEmbedded reports whether this is an embedded filesystem.
	IsEmbedded() bool
}

// RealFS serves files from a directory on disk.
type RealFS struct {
	basePath string
}

// NewRealFS creates a FileSystem rooted at basePath on disk.
func NewRealFS(basePath string) *RealFS {
	return &RealFS{basePath: basePath}
}

func (r *RealFS) Open(name string) (fs.File, error) {
	actualPath, err := r.find(name)
	if err != nil {
		return nil, err
	}
	return os.Open(actualPath)
}

func (r *RealFS) ReadFile(name string) ([]byte, error) {
	actualPath, err := r.find(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(actualPath)
}

func (r *RealFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(r.resolvePath(name))
}

func (r *RealFS) BasePath() string {
	return r.basePath
}

func (r *RealFS) IsEmbedded() bool {
	return false
}

func (r *RealFS) resolvePath(name string) string {
	cleanName := strings.TrimPrefix(strings.TrimPrefix(name, "/"), "\\")
	if r.basePath != "" {
		return filepath.Join(r.basePath, cleanName)
	}
	return cleanName
}

func (r *RealFS) find(name string) (string, error) {
	path := r.resolvePath(name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return FindFileCaseInsensitive(filepath.Dir(path), filepath.Base(path))
}

// EmbedFS serves files from an fs.FS, typically an embed.FS.
type EmbedFS struct {
	fsys     fs.FS
	basePath string
}

// NewEmbedFS creates a FileSystem over fsys rooted at basePath.
func NewEmbedFS(fsys fs.FS, basePath string) *EmbedFS {
	return &EmbedFS{fsys: fsys, basePath: basePath}
}

func (e *EmbedFS) Open(name string) (fs.File, error) {
	actualPath, err := e.find(name)
	if err != nil {
		return nil, err
	}
	return e.fsys.Open(actualPath)
}

func (e *EmbedFS) ReadFile(name string) ([]byte, error) {
	actualPath, err := e.find(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(e.fsys, actualPath)
}

func (e *EmbedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(e.fsys, e.resolvePath(name))
}

func (e *EmbedFS) BasePath() string {
	return e.basePath
}

func (e *EmbedFS) IsEmbedded() bool {
	return true
}

func (e *EmbedFS) resolvePath(name string) string {
	cleanName := strings.TrimPrefix(strings.TrimPrefix(name, "/"), "\\")
	if cleanName == "." || cleanName == "" {
		if e.basePath != "" {
			return e.basePath
		}
		return "."
	}
	if e.basePath != "" {
		return e.basePath + "/" + cleanName
	}
	return cleanName
}

func (e *EmbedFS) find(name string) (string, error) {
	path := e.resolvePath(name)
	if f, err := e.fsys.Open(path); err == nil {
		f.Close()
		return path, nil
	}
	dir := strings.ReplaceAll(filepath.Dir(path), "\\", "/")
	return FindFileCaseInsensitiveFS(e.fsys, dir, filepath.Base(path))
}

// Package adapter contains filesystem and serialization adapters for mutconf.
package adapter

import (
	"os"
	"path/filepath"

	m "gooze.dev/pkg/mutconf/internal/model"
)

const descriptorFilePerm = 0o644

// DocumentFS abstracts the filesystem operations the domain layer relies on
// when reading and writing descriptor files, so loading logic can be tested
// without touching the disk.
type DocumentFS interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence
	// of files referenced from a descriptor.
	FileInfo(path m.Path) (os.FileInfo, error)

	// CreateFile writes content to a new file and fails if the file exists.
	CreateFile(path m.Path, content []byte) error

	// WriteFile writes content to a file, replacing any previous content.
	WriteFile(path m.Path, content []byte) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalDocumentFS is the os-backed DocumentFS.
type LocalDocumentFS struct{}

// NewLocalDocumentFS constructs a LocalDocumentFS.
func NewLocalDocumentFS() *LocalDocumentFS {
	return &LocalDocumentFS{}
}

// ReadFile loads file contents from disk.
func (a *LocalDocumentFS) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - descriptor paths are chosen by the user on purpose
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalDocumentFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// CreateFile creates path exclusively, creating parent directories as needed.
func (a *LocalDocumentFS) CreateFile(path m.Path, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - target chosen by the user
	f, err := os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, descriptorFilePerm)
	if err != nil {
		return err
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// WriteFile writes content to a file, creating parent directories as needed.
func (a *LocalDocumentFS) WriteFile(path m.Path, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, descriptorFilePerm)
}

// JoinPath joins path elements into a single path.
func (a *LocalDocumentFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

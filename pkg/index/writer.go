package index

import (
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/consts"
)

// Writer stores report bodies.
type Writer interface {
	// EnsureDir creates path (and its parents) when missing.
	EnsureDir(path string) error

	// Write replaces the file at path with data.
	Write(path string, data []byte) error
}

// FileWriter is a Writer backed by the local filesystem.
type FileWriter struct{}

// EnsureDir creates path with consts.ModeDir when it does not exist.
func (FileWriter) EnsureDir(path string) error {
	return errors.Wrapf(os.MkdirAll(path, consts.ModeDir), "failed to create directory: %s", path)
}

// Write writes data to path with consts.ModeFile.
func (FileWriter) Write(path string, data []byte) error {
	return errors.Wrapf(os.WriteFile(path, data, consts.ModeFile), "failed to write file: %s", path)
}

package project

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrationindex/pkg/analyzer"
	"github.com/pseudomuto/migrationindex/pkg/config"
	"github.com/pseudomuto/migrationindex/pkg/consts"
)

// ErrMissingDir is returned by Discover when a migration type's directory does
// not exist.
var ErrMissingDir = errors.New("migration directory does not exist")

// Discover lists the migration files of mt in lexicographical order.
//
// Include patterns select files relative to the type directory and exclude
// patterns remove entries from that selection. A missing directory yields an
// error whose cause is ErrMissingDir.
//
// Example:
//
//	mt, _ := proj.Config().Type("default")
//	inputs, err := proj.Discover(mt)
//	if errors.Cause(err) == project.ErrMissingDir {
//		log.Printf("skipping %s", mt.Name)
//	}
func (p *Project) Discover(mt *config.MigrationType) ([]analyzer.Input, error) {
	dir := p.Path(mt.Path)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrMissingDir, dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat dir: %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}

	for _, pattern := range mt.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern for %s: %s", mt.Name, pattern)
		}
	}

	includes := mt.Include
	if len(includes) == 0 {
		includes = []string{consts.DefaultInclude}
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "invalid include pattern for %s: %s", mt.Name, pattern)
		}

		for _, match := range matches {
			if seen[match] || excluded(match, mt.Exclude) {
				continue
			}

			seen[match] = true
			files = append(files, match)
		}
	}

	slices.Sort(files)

	inputs := make([]analyzer.Input, len(files))
	for i, file := range files {
		path := filepath.Join(dir, filepath.FromSlash(file))
		inputs[i] = analyzer.Input{
			Path:         path,
			RelativePath: p.Rel(path),
			Category:     mt.Name,
		}
	}

	return inputs, nil
}

// MigrationDirs returns the existing directories of the given types, including
// their subdirectories.
func (p *Project) MigrationDirs(types []*config.MigrationType) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	for _, mt := range types {
		root := p.Path(mt.Path)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() && !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}

			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", root)
		}
	}

	return dirs, nil
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}

	return false
}

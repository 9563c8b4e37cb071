package changed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/gorewood/devtools/internal/git"
	"github.com/gorewood/devtools/internal/logging"
)

// StatusSource reports the repository root and its working-tree status.
// *git.Runner satisfies it.
type StatusSource interface {
	RepoRoot(ctx context.Context) (string, error)
	Status(ctx context.Context) ([]git.StatusEntry, error)
}

// Selector turns git status into the ordered list of absolute file paths to format.
type Selector struct {
	Source StatusSource
	Filter Filter
	// FS is used to expand changed directories. Defaults to the OS filesystem.
	FS  afero.Fs
	Log logrus.FieldLogger
}

// NewSelector returns a Selector reading status from source and walking the OS filesystem.
func NewSelector(source StatusSource, filter Filter, log logrus.FieldLogger) *Selector {
	return &Selector{
		Source: source,
		Filter: filter,
		FS:     afero.NewOsFs(),
		Log:    log,
	}
}

// Select returns the changed files that pass the filter, in status order,
// with directories expanded in lexical walk order. Deleted and ignored
// entries are skipped; renames contribute their destination only.
// Errors from git are returned unchanged so their exit status survives.
func (s *Selector) Select(ctx context.Context) ([]string, error) {
	log := logging.OrDiscard(s.Log)

	root, err := s.Source.RepoRoot(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.Source.Status(ctx)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.Changed() {
			log.WithFields(logrus.Fields{"path": entry.Path, "code": entry.Code}).Debug("skip status entry")
			continue
		}

		path := filepath.Join(root, filepath.FromSlash(entry.Path))
		if entry.IsDir {
			dirFiles, err := s.expandDir(path)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
			continue
		}

		if s.Filter.Accept(path) {
			files = append(files, path)
		} else {
			log.WithField("path", path).Debug("filtered out")
		}
	}

	log.WithField("count", len(files)).Debug("selected changed files")
	return files, nil
}

// expandDir walks dir and returns every regular file passing the filter.
// Symlinks to regular files count; symlinked directories are not entered.
// A directory whose own path matches an exclusion is skipped whole.
func (s *Selector) expandDir(dir string) ([]string, error) {
	if s.Filter.Excludes.Match(dir) {
		logging.OrDiscard(s.Log).WithField("dir", dir).Debug("excluded directory")
		return nil, nil
	}

	fs := s.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !isRegularFile(fs, path, info) {
			return nil
		}
		if s.Filter.Accept(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expanding changed directory %s: %w", dir, err)
	}
	return files, nil
}

// isRegularFile reports whether info describes a regular file, following a
// symlink to its target.
func isRegularFile(fs afero.Fs, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := fs.Stat(path)
	return err == nil && target.Mode().IsRegular()
}

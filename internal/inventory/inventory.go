package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"transcriptor/internal/logging"
	"transcriptor/internal/services"
)

// ErrScopeClosed indicates a scope was closed twice. Scopes are single use;
// construct a new one per acquisition.
var ErrScopeClosed = errors.New("inventory scope already closed")

// Scope is a single-use acquisition over one directory. Opening validates
// the directory and snapshots the regular files directly inside it; closing
// observes any error that unwound through the scope body, logging it before
// handing it back unchanged.
//
// A Scope must not be shared between goroutines. Concurrent scopes over the
// same directory are fine: each holds its own snapshot, and external
// mutation of the directory after Open is not observed.
type Scope struct {
	dir    string
	files  []string
	logger *slog.Logger
	closed bool
}

// Open validates that dir exists and captures a snapshot of the regular
// files directly inside it (non-recursive, subdirectories excluded). The
// snapshot is fixed at this moment; later changes to the directory are not
// reflected. A missing directory fails with a not-found error.
func Open(dir string, logger *slog.Logger) (*Scope, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "inventory", "open",
				fmt.Sprintf("directory %q does not exist", dir), err)
		}
		return nil, fmt.Errorf("stat directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "inventory", "open",
			fmt.Sprintf("%q is not a directory", dir), nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return &Scope{dir: dir, files: files, logger: logger}, nil
}

// Files returns the snapshot captured when the scope was opened.
func (s *Scope) Files() []string {
	return s.files
}

// Dir returns the directory this scope was opened over.
func (s *Scope) Dir() string {
	return s.dir
}

// Close releases the scope. A non-nil err is treated as the error that
// propagated through the scope body: it is reported to the logger exactly
// once and then returned unchanged, never converted or swallowed. Closing
// an already-closed scope fails with ErrScopeClosed.
func (s *Scope) Close(err error) error {
	if s.closed {
		return ErrScopeClosed
	}
	s.closed = true

	if err != nil && s.logger != nil {
		s.logger.Error("inventory scope failed",
			logging.String("directory", s.dir),
			logging.String("kind", services.Kind(err)),
			logging.Error(err),
		)
	}
	return err
}

// With runs fn against the file snapshot of dir inside a scope, closing the
// scope on every path. Errors from fn are logged by the scope and returned
// to the caller unchanged.
func With(dir string, logger *slog.Logger, fn func(files []string) error) error {
	scope, err := Open(dir, logger)
	if err != nil {
		return err
	}
	return scope.Close(fn(scope.Files()))
}

package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
	"transcriptor/internal/fileutil"
	"transcriptor/internal/inventory"
	"transcriptor/internal/logging"
	"transcriptor/internal/media"
	"transcriptor/internal/services"
)

// ErrScanInProgress reports that another scanner holds the ingest lock.
var ErrScanInProgress = errors.New("another ingest scan is already running")

// Scanner registers downloaded media files found on disk as catalog resources.
type Scanner struct {
	cfg        *config.Config
	store      *catalog.Store
	classifier *media.Classifier
	logger     *slog.Logger

	lockPath string
	lock     *flock.Flock
}

// Result summarizes one scan pass over a directory.
type Result struct {
	Scanned    int
	Registered int
	Skipped    int
	Duplicates int
}

// New constructs a scanner with initialized dependencies.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) (*Scanner, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("scanner requires config and store")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "ingest.lock")
	return &Scanner{
		cfg:        cfg,
		store:      store,
		classifier: media.NewClassifier(cfg.Classifier.VideoExtensions),
		logger:     logging.WithComponent(logger, "ingest"),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Scan walks the given directory (defaulting to the configured download
// directory), registers each video file whose file URL is not yet in the
// catalog, and marks registered resources downloaded. Only one scan may run
// at a time per log directory.
func (s *Scanner) Scan(ctx context.Context, dir string) (Result, error) {
	target := strings.TrimSpace(dir)
	if target == "" {
		target = s.cfg.Paths.DownloadDir
	}

	if err := fileutil.EnsureDir(s.cfg.Paths.LogDir); err != nil {
		return Result{}, fmt.Errorf("prepare lock directory: %w", err)
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !ok {
		return Result{}, ErrScanInProgress
	}
	defer func() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && s.logger != nil {
			s.logger.Warn("release ingest lock", logging.Error(unlockErr))
		}
	}()

	var result Result
	err = inventory.With(target, s.logger, func(files []string) error {
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Scanned++
			if !s.classifier.IsVideo(path) {
				result.Skipped++
				continue
			}
			registered, err := s.register(ctx, path)
			if err != nil {
				return err
			}
			if registered {
				result.Registered++
			} else {
				result.Duplicates++
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if s.logger != nil {
		s.logger.Info("ingest scan finished",
			logging.String("directory", target),
			logging.Int("scanned", result.Scanned),
			logging.Int("registered", result.Registered),
			logging.Int("skipped", result.Skipped),
			logging.Int("duplicates", result.Duplicates),
		)
	}
	return result, nil
}

// register inserts one file as a downloaded resource, reporting false when
// the file's URL is already cataloged.
func (s *Scanner) register(ctx context.Context, path string) (bool, error) {
	url := fileURL(path)
	title := fileutil.StripExtension(path)

	resource, err := s.store.Add(ctx, url, title, catalog.KindVideo)
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateURL) {
			return false, nil
		}
		return false, services.Wrap(services.ErrTransient, "ingest", "register file",
			fmt.Sprintf("could not catalog %q", path), err)
	}

	resource.Status = catalog.StatusDownloaded
	resource.LocalPath = path
	if err := s.store.Update(ctx, resource); err != nil {
		return false, fmt.Errorf("mark downloaded: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("file registered",
			logging.Int64("resource_id", resource.ID),
			logging.String("path", path),
		)
	}
	return true, nil
}

// LockPath returns the path of the single-instance scan lock file.
func (s *Scanner) LockPath() string {
	return s.lockPath
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}

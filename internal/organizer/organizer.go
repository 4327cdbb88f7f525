package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
	"transcriptor/internal/fileutil"
	"transcriptor/internal/logging"
	"transcriptor/internal/services"
	"transcriptor/internal/textutil"
)

// Organizer moves downloaded files into their final library location.
type Organizer struct {
	cfg    *config.Config
	store  *catalog.Store
	logger *slog.Logger
}

// New constructs an organizer bound to the given catalog store.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *Organizer {
	return &Organizer{cfg: cfg, store: store, logger: logging.WithComponent(logger, "organizer")}
}

// Organize moves the resource's downloaded file into the library layout
// (library/<kind dir>/<Display Title>/<file>) and marks the resource
// completed. The resource must have a downloaded local file.
func (o *Organizer) Organize(ctx context.Context, resource *catalog.Resource) error {
	if resource == nil {
		return services.Wrap(services.ErrValidation, "organizing", "validate input", "resource is nil", nil)
	}
	source := strings.TrimSpace(resource.LocalPath)
	if source == "" {
		return services.Wrap(services.ErrValidation, "organizing", "validate input",
			fmt.Sprintf("resource %d has no downloaded file", resource.ID), nil)
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "organizing", "stat source",
				fmt.Sprintf("downloaded file %q does not exist", source), err)
		}
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, "organizing", "stat source",
			fmt.Sprintf("%q is a directory", source), nil)
	}

	if err := o.preflight(uint64(info.Size())); err != nil {
		return err
	}

	resource.Status = catalog.StatusOrganizing
	if err := o.store.Update(ctx, resource); err != nil {
		return fmt.Errorf("mark organizing: %w", err)
	}

	target := o.targetPath(resource, source)
	if err := fileutil.EnsureParentDir(target); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	if _, err := os.Stat(target); err == nil {
		if !o.cfg.Library.OverwriteExisting {
			return services.Wrap(services.ErrValidation, "organizing", "place file",
				fmt.Sprintf("target %q already exists", target), nil)
		}
		if !fileutil.RemoveIfExists(target, o.logger) {
			return services.Wrap(services.ErrValidation, "organizing", "place file",
				fmt.Sprintf("could not replace existing target %q", target), nil)
		}
	}

	if err := moveFile(o.logger, source, target); err != nil {
		return fmt.Errorf("move %q to %q: %w", source, target, err)
	}

	resource.FinalPath = target
	resource.Status = catalog.StatusCompleted
	resource.ErrorMessage = ""
	if err := o.store.Update(ctx, resource); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	if o.logger != nil {
		o.logger.Info("resource organized",
			logging.Int64("resource_id", resource.ID),
			logging.String("final_file", target),
		)
	}
	return nil
}

// targetPath builds the final library path for a resource's file. The
// directory name comes from the display title, the file name from the
// sanitized title with the source extension preserved.
func (o *Organizer) targetPath(resource *catalog.Resource, source string) string {
	name := textutil.CleanFileName(resource.Title)
	if name == "" {
		name = fileutil.StripExtension(source)
	}
	ext := filepath.Ext(source)
	return filepath.Join(
		o.cfg.Paths.LibraryDir,
		o.kindDir(resource.Kind),
		DisplayTitle(resource.Title),
		name+ext,
	)
}

func (o *Organizer) kindDir(kind catalog.Kind) string {
	if kind == catalog.KindAudio {
		return o.cfg.Library.AudioDir
	}
	return o.cfg.Library.VideosDir
}

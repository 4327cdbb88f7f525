package organizer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"unicode"

	"golang.org/x/sys/unix"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"transcriptor/internal/fileutil"
	"transcriptor/internal/logging"
	"transcriptor/internal/services"
)

// DisplayTitle converts a raw resource title into a human-readable library
// folder name: separator characters collapse to spaces, everything else
// non-alphanumeric is dropped, and the result is title-cased.
func DisplayTitle(title string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	result := strings.TrimSpace(cleaned.String())
	if result == "" {
		return "Unknown Resource"
	}
	return cases.Title(language.Und).String(result)
}

// preflight verifies the library root is writable and has room for the file.
func (o *Organizer) preflight(sizeBytes uint64) error {
	libraryDir := o.cfg.Paths.LibraryDir
	if err := fileutil.EnsureDir(libraryDir); err != nil {
		return services.Wrap(services.ErrConfiguration, "organizing", "preflight",
			fmt.Sprintf("library dir %q unavailable", libraryDir), err)
	}
	if err := unix.Access(libraryDir, unix.W_OK|unix.X_OK); err != nil {
		return services.Wrap(services.ErrConfiguration, "organizing", "preflight",
			fmt.Sprintf("library dir %q is not writable", libraryDir), err)
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(libraryDir, &stat); err != nil {
		return fmt.Errorf("statfs library dir: %w", err)
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < sizeBytes {
		return services.Wrap(services.ErrValidation, "organizing", "preflight",
			fmt.Sprintf("library dir %q has %d bytes free, need %d", libraryDir, free, sizeBytes), nil)
	}
	return nil
}

// moveFile renames source onto target, falling back to a verified copy plus
// delete when the paths live on different filesystems.
func moveFile(logger *slog.Logger, source, target string) error {
	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := fileutil.CopyFileVerified(source, target); err != nil {
			return err
		}
		if err := os.Remove(source); err != nil && logger != nil {
			logger.Warn("remove source after cross-device copy",
				logging.String("path", source),
				logging.Error(err),
			)
		}
		return nil
	}
	return renameErr
}

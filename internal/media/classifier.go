package media

import (
	"path/filepath"
	"strings"
)

// DefaultVideoExtensions lists the container extensions recognized as video
// files when no explicit allow-list is configured.
var DefaultVideoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm", ".m4v"}

// Classifier decides whether a path names a recognized video container.
// Classification is by extension only; file contents are never inspected,
// so a mislabeled file is classified by its name.
type Classifier struct {
	extensions map[string]struct{}
}

// NewClassifier builds a classifier for the given extension allow-list.
// Entries are matched case-insensitively and may be written with or without
// the leading dot. An empty list falls back to DefaultVideoExtensions.
func NewClassifier(extensions []string) *Classifier {
	if len(extensions) == 0 {
		extensions = DefaultVideoExtensions
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return &Classifier{extensions: set}
}

// IsVideo reports whether the path's final extension is on the allow-list.
func (c *Classifier) IsVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, ok := c.extensions[ext]
	return ok
}

package catalog

import (
	"errors"
	"strings"
)

// ErrDuplicateURL indicates an insert attempted to reuse the URL of an
// existing resource. The uniqueness constraint lives in the database, so
// concurrent writers cannot race past it.
var ErrDuplicateURL = errors.New("resource url already exists")

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Package inventory provides a scoped view over a directory's files.
//
// A scope pairs acquisition (existence check plus a one-time snapshot of
// the directory's regular files) with release (observing and logging any
// error that unwound through the scope, then re-raising it). The release
// side always runs and never swallows the caller's error.
package inventory

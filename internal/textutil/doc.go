// Package textutil provides text processing utilities for turning external
// resource titles into filesystem-safe names.
package textutil

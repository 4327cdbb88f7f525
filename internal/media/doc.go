// Package media classifies files by their container extension.
package media

// Package timecode converts between durations in seconds and the
// HH:MM:SS,mmm timestamp form used by subtitle files.
package timecode

// Package logging builds the slog loggers used across the application and
// provides shared attribute helpers.
//
// Loggers write to stdout/stderr plus the configured log file, in either
// console (text) or JSON form. Components tag themselves with the
// "component" attribute via WithComponent.
package logging

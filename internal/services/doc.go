// Package services defines the shared error taxonomy used by components
// that touch external state, and maps failures onto catalog statuses.
package services

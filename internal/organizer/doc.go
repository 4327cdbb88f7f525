// Package organizer moves downloaded files into the final library layout
// and advances the owning catalog resource to completed.
package organizer

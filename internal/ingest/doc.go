// Package ingest scans directories for finished downloads and registers
// them in the catalog.
package ingest

// Package catalog persists streaming resources in SQLite, keyed by a URL
// that the storage layer enforces unique.
//
// The Store manages database connections, migration application, stats
// queries, and stuck-resource recovery. Schema changes are added as new
// files under migrations/; applied versions are tracked in the
// schema_migrations table so existing databases upgrade in place.
package catalog

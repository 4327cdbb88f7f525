package testsupport

import (
	"context"
	"testing"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddResource inserts a resource for tests using the provided store.
func AddResource(t testing.TB, store *catalog.Store, url, title string, kind catalog.Kind) *catalog.Resource {
	t.Helper()

	resource, err := store.Add(context.Background(), url, title, kind)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return resource
}

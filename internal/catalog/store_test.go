package catalog_test

import (
	"context"
	"errors"
	"testing"

	"transcriptor/internal/catalog"
	"transcriptor/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	resource, err := store.Add(ctx, "https://example.com/watch?v=abc", "Sample Title", catalog.KindVideo)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if resource.ID == 0 {
		t.Fatal("expected resource ID to be assigned")
	}
	if resource.ExternalID == "" {
		t.Fatal("expected external ID to be assigned")
	}
	if resource.Status != catalog.StatusPending {
		t.Fatalf("new resource status = %s, want pending", resource.Status)
	}

	fetched, err := store.GetByID(ctx, resource.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.Title != "Sample Title" {
		t.Fatalf("unexpected fetched resource: %#v", fetched)
	}

	found, err := store.GetByURL(ctx, "https://example.com/watch?v=abc")
	if err != nil {
		t.Fatalf("GetByURL failed: %v", err)
	}
	if found == nil || found.ID != resource.ID {
		t.Fatalf("expected to find inserted resource, got %#v", found)
	}
}

func TestAddDuplicateURLFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.AddResource(t, store, "https://example.com/v/1", "First", catalog.KindVideo)

	_, err := store.Add(ctx, "https://example.com/v/1", "Second", catalog.KindVideo)
	if !errors.Is(err, catalog.ErrDuplicateURL) {
		t.Fatalf("duplicate insert = %v, want ErrDuplicateURL", err)
	}

	// The original row must be untouched.
	kept, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if kept == nil || kept.Title != "First" {
		t.Fatalf("original resource was modified: %#v", kept)
	}
}

func TestAddRequiresURL(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Add(context.Background(), "  ", "No URL", catalog.KindVideo); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestUpdatePersistsChanges(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	resource := testsupport.AddResource(t, store, "https://example.com/v/2", "Before", catalog.KindVideo)

	resource.Title = "After"
	resource.Status = catalog.StatusDownloaded
	resource.LocalPath = "/tmp/after.mkv"
	resource.DurationSeconds = 3661.25
	if err := store.Update(ctx, resource); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, resource.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched.Title != "After" || fetched.Status != catalog.StatusDownloaded {
		t.Fatalf("update not persisted: %#v", fetched)
	}
	if fetched.LocalPath != "/tmp/after.mkv" || fetched.DurationSeconds != 3661.25 {
		t.Fatalf("update not persisted: %#v", fetched)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	resource := testsupport.AddResource(t, store, "https://example.com/v/3", "X", catalog.KindVideo)
	resource.Status = catalog.Status("sideways")
	if err := store.Update(context.Background(), resource); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	a := testsupport.AddResource(t, store, "https://example.com/v/a", "A", catalog.KindVideo)
	testsupport.AddResource(t, store, "https://example.com/v/b", "B", catalog.KindAudio)

	a.Status = catalog.StatusCompleted
	if err := store.Update(ctx, a); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d resources, want 2", len(all))
	}

	completed, err := store.List(ctx, catalog.StatusCompleted)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != a.ID {
		t.Fatalf("filtered list = %#v", completed)
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	resource := testsupport.AddResource(t, store, "https://example.com/v/rm", "Doomed", catalog.KindVideo)

	removed, err := store.Remove(ctx, resource.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Fatal("expected removal to report success")
	}

	removed, err = store.Remove(ctx, resource.ID)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed {
		t.Fatal("expected second removal to report nothing deleted")
	}
}

func TestResetStuckProcessing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	downloading := testsupport.AddResource(t, store, "https://example.com/v/d", "D", catalog.KindVideo)
	organizing := testsupport.AddResource(t, store, "https://example.com/v/o", "O", catalog.KindVideo)
	done := testsupport.AddResource(t, store, "https://example.com/v/done", "Done", catalog.KindVideo)

	downloading.Status = catalog.StatusDownloading
	organizing.Status = catalog.StatusOrganizing
	done.Status = catalog.StatusCompleted
	for _, r := range []*catalog.Resource{downloading, organizing, done} {
		if err := store.Update(ctx, r); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	count, err := store.ResetStuckProcessing(ctx)
	if err != nil {
		t.Fatalf("ResetStuckProcessing failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("reset %d resources, want 2", count)
	}

	pending, err := store.List(ctx, catalog.StatusPending)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending resources, got %d", len(pending))
	}
}

func TestStatsAndHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.AddResource(t, store, "https://example.com/v/p1", "P1", catalog.KindVideo)
	failed := testsupport.AddResource(t, store, "https://example.com/v/f1", "F1", catalog.KindVideo)
	failed.Status = catalog.StatusFailed
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[catalog.StatusPending] != 1 || stats[catalog.StatusFailed] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Total != 2 || health.Pending != 1 || health.Failed != 1 {
		t.Fatalf("unexpected health summary: %+v", health)
	}
}

func TestClearCompleted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	done := testsupport.AddResource(t, store, "https://example.com/v/c", "C", catalog.KindVideo)
	done.Status = catalog.StatusCompleted
	if err := store.Update(ctx, done); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	testsupport.AddResource(t, store, "https://example.com/v/keep", "Keep", catalog.KindVideo)

	count, err := store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("cleared %d resources, want 1", count)
	}

	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "Keep" {
		t.Fatalf("unexpected remaining resources: %#v", remaining)
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.AddResource(t, store, "https://example.com/v/h1", "H1", catalog.KindVideo)
	testsupport.AddResource(t, store, "https://example.com/v/h2", "H2", catalog.KindVideo)

	health, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists {
		t.Fatalf("unexpected database health: %+v", health)
	}
	if !health.IntegrityCheck {
		t.Fatalf("integrity check failed: %+v", health)
	}
	if health.TotalResources != 2 {
		t.Fatalf("TotalResources = %d, want 2", health.TotalResources)
	}
	if health.DBPath != store.Path() {
		t.Fatalf("DBPath = %q, want %q", health.DBPath, store.Path())
	}
}

func TestReopenPreservesData(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	testsupport.AddResource(t, store, "https://example.com/v/persist", "Persist", catalog.KindVideo)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	found, err := reopened.GetByURL(context.Background(), "https://example.com/v/persist")
	if err != nil {
		t.Fatalf("GetByURL failed: %v", err)
	}
	if found == nil || found.Title != "Persist" {
		t.Fatalf("resource lost across reopen: %#v", found)
	}
}

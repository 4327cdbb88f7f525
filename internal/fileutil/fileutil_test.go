package fileutil

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "victim.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !RemoveIfExists(target, nil) {
		t.Fatal("expected removal of existing file to succeed")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("file still present after removal")
	}

	// Absent file counts as success and reports nothing.
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if !RemoveIfExists(target, logger) {
		t.Fatal("expected removal of absent file to succeed")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}

func TestRemoveIfExistsReportsFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	sub := filepath.Join(dir, "locked")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(sub, "victim.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(sub, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(sub, 0o755) })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if RemoveIfExists(target, logger) {
		t.Fatal("expected removal to fail in read-only directory")
	}
	if !strings.Contains(buf.String(), "remove file failed") {
		t.Fatalf("expected failure to be reported once, got: %s", buf.String())
	}
	if strings.Count(buf.String(), "remove file failed") != 1 {
		t.Fatalf("expected exactly one report, got: %s", buf.String())
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", nested)
	}

	// Idempotent on an existing directory.
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir on existing dir failed: %v", err)
	}

	if err := EnsureDir("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "x", "y", "file.txt")

	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "x", "y"))
	if err != nil || !info.IsDir() {
		t.Fatal("parent directory was not created")
	}

	if err := EnsureParentDir("bare.txt"); err != nil {
		t.Fatalf("EnsureParentDir on bare name failed: %v", err)
	}
}

func TestStripExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/path/to/file.txt", "file"},
		{"clip.tar.gz", "clip.tar"},
		{"noext", "noext"},
		{"/deep/dir/noext", "noext"},
		{"trailing.", "trailing"},
	}
	for _, tc := range cases {
		if got := StripExtension(tc.path); got != tc.want {
			t.Errorf("StripExtension(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestObjectKey_UsesExtensionOnly(t *testing.T) {
	key := ObjectKey("../../etc/passwd.PNG")
	if !strings.HasPrefix(key, "avatars/") {
		t.Fatalf("expected avatars/ prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("expected .png suffix, got %q", key)
	}
	if strings.Contains(key, "passwd") {
		t.Fatalf("expected original name to be discarded, got %q", key)
	}
}

func TestObjectKey_DefaultsToJpg(t *testing.T) {
	if key := ObjectKey("avatar"); !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("expected .jpg suffix for extensionless name, got %q", key)
	}
}

func TestObjectKey_Unique(t *testing.T) {
	if ObjectKey("a.png") == ObjectKey("a.png") {
		t.Fatal("expected distinct keys for repeated uploads")
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"avatar.png":  "image/png",
		"avatar.GIF":  "image/gif",
		"avatar.webp": "image/webp",
		"avatar.jpg":  "image/jpeg",
		"avatar.jpeg": "image/jpeg",
		"avatar":      "image/jpeg",
	}
	for name, want := range cases {
		if got := ContentTypeFor(name); got != want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestLocalStore_PutRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/uploads/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Put(context.Background(), "avatars/test.png", []byte("blob"), "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://localhost:8080/uploads/avatars/test.png" {
		t.Fatalf("unexpected url: %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "test.png"))
	if err != nil {
		t.Fatalf("failed to read stored blob: %v", err)
	}
	if string(data) != "blob" {
		t.Fatalf("unexpected blob contents: %q", data)
	}
}

func TestNewLocalStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewLocalStore(dir, "http://localhost/uploads"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

package uploads

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/static/uploads/")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	public, err := store.Save(ctx, "abc-intro.mp4", strings.NewReader("video-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if public != "/static/uploads/abc-intro.mp4" {
		t.Errorf("public path = %q", public)
	}
	data, err := os.ReadFile(filepath.Join(dir, "abc-intro.mp4"))
	if err != nil || string(data) != "video-bytes" {
		t.Fatalf("stored file = %q, %v", data, err)
	}

	if _, err := store.Save(ctx, "abc-intro.mp4", strings.NewReader("other")); err == nil {
		t.Error("second Save with the same name should fail rather than overwrite")
	}

	if err := store.Remove(ctx, public); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc-intro.mp4")); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}
	if err := store.Remove(ctx, public); err != nil {
		t.Errorf("Remove of missing file = %v, want nil", err)
	}
}

func TestLocalStore_RejectsUnsafeNames(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir(), "/static/uploads")
	for _, name := range []string{"", "../escape.mp4", "a/b.mp4", ".hidden"} {
		if _, err := store.Save(context.Background(), name, strings.NewReader("x")); err != ErrUnsafeName {
			t.Errorf("Save(%q) error = %v, want ErrUnsafeName", name, err)
		}
	}
}

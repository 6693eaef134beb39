package media_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/yeisme/goatdesk/pkg/internal/storage/media"
)

const prefix = "/uploads/"

func newStore(t *testing.T, files ...string) (*media.LocalStore, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fsys, "/"+f, []byte("x"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", f, err)
		}
	}

	return media.NewLocalStoreFs(fsys, prefix), fsys
}

func TestResolve(t *testing.T) {
	ok := map[string]string{
		"/uploads/a.jpg":            "a.jpg",
		"/uploads/videos/v.mp4":     "videos/v.mp4",
		"/uploads/goat-01hx.jpeg":   "goat-01hx.jpeg",
		"/uploads/dir.with.dot/a.b": "dir.with.dot/a.b",
	}
	for in, want := range ok {
		got, err := media.Resolve(prefix, in)
		if err != nil || got != want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	bad := []string{
		"",
		"/uploads/",
		"uploads/a.jpg",
		"/etc/passwd",
		"/uploads/../etc/passwd",
		"/uploads/a/../../x.jpg",
		"/uploads//a.jpg",
		"/uploads/./a.jpg",
		"/uploads/..",
		"/uploads/a\\..\\b.jpg",
		"https://cdn.example.com/uploads/a.jpg",
	}
	for _, in := range bad {
		if _, err := media.Resolve(prefix, in); err == nil {
			t.Errorf("Resolve(%q) accepted", in)
		}
	}
}

func TestLocalStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, fsys := newStore(t, "a.jpg", "b.jpg")

	if !store.Exists(ctx, "/uploads/a.jpg") {
		t.Fatal("a.jpg should exist")
	}

	if !store.Delete(ctx, "/uploads/a.jpg") {
		t.Fatal("first delete should report removal")
	}

	if store.Delete(ctx, "/uploads/a.jpg") {
		t.Fatal("second delete should report false")
	}

	if ok, _ := afero.Exists(fsys, "/b.jpg"); !ok {
		t.Fatal("b.jpg must be untouched")
	}
}

func TestLocalStoreDeleteRejectsOutsideNamespace(t *testing.T) {
	ctx := context.Background()
	store, fsys := newStore(t, "keep.jpg")

	if err := afero.WriteFile(fsys, "/secret.txt", []byte("s"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, l := range []string{"/secret.txt", "keep.jpg", "/uploads/../secret.txt", "/static/keep.jpg"} {
		if store.Delete(ctx, l) {
			t.Errorf("Delete(%q) should be rejected", l)
		}
	}

	if ok, _ := afero.Exists(fsys, "/keep.jpg"); !ok {
		t.Fatal("keep.jpg removed")
	}
}

func TestLocalStoreDeleteMany(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, "a.jpg", "c.jpg")

	n := store.DeleteMany(ctx, []string{"/uploads/a.jpg", "/uploads/missing.jpg", "/outside/x.jpg", "/uploads/c.jpg"})
	if n != 2 {
		t.Fatalf("DeleteMany = %d, want 2", n)
	}

	if store.Exists(ctx, "/uploads/c.jpg") {
		t.Fatal("c.jpg should be gone after batch despite earlier failures")
	}
}

func TestLocalStoreSaveListOpen(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	loc, err := store.Save(ctx, "goat-1.png", bytes.NewReader([]byte("png-bytes")), 9, "image/png")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if loc != "/uploads/goat-1.png" {
		t.Fatalf("locator = %q", loc)
	}

	if _, err := store.Save(ctx, "videos/video-1.mp4", bytes.NewReader([]byte("mp4")), 3, "video/mp4"); err != nil {
		t.Fatalf("save video: %v", err)
	}

	files, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(files) != 1 || files[0].Name != "goat-1.png" || files[0].Locator != loc {
		t.Fatalf("root list = %+v", files)
	}

	videos, err := store.List(ctx, "videos")
	if err != nil || len(videos) != 1 || videos[0].Locator != "/uploads/videos/video-1.mp4" {
		t.Fatalf("videos list = %+v, %v", videos, err)
	}

	rc, info, err := store.Open(ctx, loc)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	if info.Size != 9 {
		t.Fatalf("size = %d", info.Size)
	}

	if _, _, err := store.Open(ctx, "/uploads/nope.png"); err == nil {
		t.Fatal("open missing should fail")
	}

	if _, err := store.Save(ctx, "../escape.png", bytes.NewReader(nil), 0, "image/png"); err == nil {
		t.Fatal("save outside namespace should fail")
	}
}

func TestLocalStoreListMissingDir(t *testing.T) {
	store, _ := newStore(t)

	files, err := store.List(context.Background(), "nothing-here")
	if err != nil || len(files) != 0 {
		t.Fatalf("List(missing) = %v, %v", files, err)
	}
}

package storage

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/drawg/internal/export"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 200, B: 30, A: 255})
		}
	}
	return img
}

func fixedClock(ts time.Time) Option {
	return WithClock(func() time.Time { return ts })
}

func TestSaveNamesByTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local)
	s, err := Open(t.TempDir(), fixedClock(ts))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tests := []struct {
		format export.Format
		want   string
	}{
		{export.PNG, "2024-03-01_14-05-09.png"},
		{export.JPEG, "2024-03-01_14-05-09.jpg"},
		{export.PNG, "2024-03-01_14-05-09-1.png"},
		{export.PNG, "2024-03-01_14-05-09-2.png"},
	}
	for _, tt := range tests {
		path, err := s.Save(solid(4, 4), tt.format)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if got := filepath.Base(path); got != tt.want {
			t.Fatalf("saved as %s, want %s", got, tt.want)
		}
		if _, err := Load(path); err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
	}
}

func TestSaveEncodeFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Save(solid(2, 2), export.Format("gif")); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, found %d entries", len(entries))
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.Save(solid(3, 3), export.PNG); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file, got %d", len(entries))
	}
}

func TestSaveKeepsFileCreatedConcurrently(t *testing.T) {
	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local)
	dir := t.TempDir()
	s, err := Open(dir, fixedClock(ts))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	other := filepath.Join(dir, "2024-03-01_14-05-09.png")
	prev := linkFn
	t.Cleanup(func() { linkFn = prev })
	linkFn = func(oldname, newname string) error {
		// Another process saves under the same second just before us.
		if newname == other {
			if err := os.WriteFile(other, []byte("theirs"), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
		}
		return os.Link(oldname, newname)
	}

	path, err := s.Save(solid(4, 4), export.PNG)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := filepath.Base(path); got != "2024-03-01_14-05-09-1.png" {
		t.Fatalf("saved as %s, want the next suffix", got)
	}
	if data, err := os.ReadFile(other); err != nil || string(data) != "theirs" {
		t.Fatalf("concurrent file replaced: %q, %v", data, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Fatalf("expected two files and no temp file, got %d", len(entries))
	}
}

func TestSaveLinkFailure(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	prev := linkFn
	t.Cleanup(func() { linkFn = prev })
	sentinel := errors.New("links not supported")
	linkFn = func(string, string) error { return sentinel }
	if _, err := s.Save(solid(2, 2), export.PNG); !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped link error", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("expected empty dir, found %d entries", len(entries))
	}
}

func TestListOrderAndFilter(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	files := []struct {
		name string
		age  time.Duration
	}{
		{"old.png", 3 * time.Hour},
		{"new.jpg", 1 * time.Hour},
		{"mid.JPEG", 2 * time.Hour},
		{".hidden.png", 0},
		{"notes.txt", 0},
	}
	for _, f := range files {
		p := filepath.Join(dir, f.name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		mt := base.Add(-f.age)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got := s.List()
	want := []string{"new.jpg", "mid.JPEG", "old.png"}
	if len(got) != len(want) {
		t.Fatalf("listed %d captures, want %d: %+v", len(got), len(want), got)
	}
	for i, c := range got {
		if c.Name() != want[i] {
			t.Fatalf("capture %d = %s, want %s", i, c.Name(), want[i])
		}
		if c.Size != 1 {
			t.Fatalf("size of %s = %d", c.Name(), c.Size)
		}
	}
}

func TestListMissingDir(t *testing.T) {
	s := &Store{dir: filepath.Join(t.TempDir(), "missing"), now: time.Now}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected no captures, got %d", len(got))
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	path, err := s.Save(solid(2, 2), export.PNG)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Delete(path)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
	// Deleting again is logged, not fatal.
	s.Delete(path)

	outside := filepath.Join(t.TempDir(), "keep.png")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s.Delete(outside)
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the store was touched: %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	big, err := s.Save(solid(400, 100), export.PNG)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	small, err := s.Save(solid(50, 20), export.JPEG)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	tests := []struct {
		path string
		max  int
		w, h int
	}{
		{big, 200, 200, 50},
		{big, 0, 200, 50},
		{small, 200, 50, 20},
		{small, 10, 10, 4},
	}
	for _, tt := range tests {
		img, err := s.Thumbnail(tt.path, tt.max)
		if err != nil {
			t.Fatalf("Thumbnail: %v", err)
		}
		if img.Bounds().Dx() != tt.w || img.Bounds().Dy() != tt.h {
			t.Fatalf("thumbnail of %s at %d = %v, want %dx%d", filepath.Base(tt.path), tt.max, img.Bounds(), tt.w, tt.h)
		}
	}
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(p, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Thumbnail(p, 100); !errors.Is(err, ErrNotImage) {
		t.Fatalf("err = %v, want ErrNotImage", err)
	}
}

func TestWatchReportsNewCapture(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	seen := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func() { seen <- struct{}{} })
	}()
	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if _, err := s.Save(solid(2, 2), export.PNG); err != nil {
		t.Fatalf("Save: %v", err)
	}
	select {
	case <-seen:
	case <-ctx.Done():
		t.Fatal("no change reported")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}

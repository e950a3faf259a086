// Package storage manages the captures directory: saving flattened images,
// listing and deleting them, and producing thumbnails.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/h2non/filetype"
	xdraw "golang.org/x/image/draw"

	"github.com/example/drawg/internal/export"
)

// TimestampLayout names saved captures, e.g. 2024-03-01_14-05-09.png.
const TimestampLayout = "2006-01-02_15-04-05"

// DefaultThumbnailSize is the longest edge of a thumbnail.
const DefaultThumbnailSize = 200

// ErrNotImage is returned when a file does not hold a PNG or JPEG image.
var ErrNotImage = errors.New("storage: not a png or jpeg image")

// Capture describes one saved file.
type Capture struct {
	Path      string
	CreatedAt time.Time
	Size      int64
}

// Name returns the file's base name.
func (c Capture) Name() string { return filepath.Base(c.Path) }

// Store is a captures directory.
type Store struct {
	dir string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time used to name new files.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// DefaultDir returns ~/.drawg/captures.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".drawg", "captures"), nil
}

// Open returns a store rooted at dir, creating it when missing.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create captures dir: %w", err)
	}
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Save encodes img and writes it under a timestamped name. The file only
// appears once it is complete; on failure nothing is left behind.
func (s *Store) Save(img image.Image, format export.Format) (string, error) {
	data, err := export.Encode(img, format)
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.dir, ".drawg-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}
	path, err := s.claim(tmpName, s.now().Format(TimestampLayout), format.Ext())
	os.Remove(tmpName)
	if err != nil {
		return "", err
	}
	return path, nil
}

// linkFn is replaced in tests.
var linkFn = os.Link

// claim hard-links tmpName to the first free stem+ext, adding a -N suffix on
// collision. Linking fails when the name exists, so a file another process
// created in the meantime is never replaced.
func (s *Store) claim(tmpName, stem, ext string) (string, error) {
	path := filepath.Join(s.dir, stem+ext)
	for i := 1; ; i++ {
		err := linkFn(tmpName, path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("link %s: %w", path, err)
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s-%d%s", stem, i, ext))
	}
}

func isCaptureName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// List returns saved captures, newest first. Hidden files and files
// without an image extension are skipped. Errors are logged and yield an
// empty list.
func (s *Store) List() []Capture {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("list captures in %s: %v", s.dir, err)
		return nil
	}
	var out []Capture
	for _, e := range entries {
		if e.IsDir() || !isCaptureName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			log.Printf("stat %s: %v", e.Name(), err)
			continue
		}
		out = append(out, Capture{
			Path:      filepath.Join(s.dir, e.Name()),
			CreatedAt: info.ModTime(),
			Size:      info.Size(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Path > out[j].Path
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes a capture. Failures are logged. Paths outside the store
// are refused.
func (s *Store) Delete(path string) {
	if !s.contains(path) {
		log.Printf("refusing to delete %s: not in %s", path, s.dir)
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("delete capture %s: %v", path, err)
		return
	}
	log.Printf("deleted capture %s", path)
}

func (s *Store) contains(path string) bool {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == dir
}

// Thumbnail loads path and scales it so neither edge exceeds maxSize. Images
// already small enough are returned at their own size.
func (s *Store) Thumbnail(path string, maxSize int) (*image.RGBA, error) {
	if maxSize <= 0 {
		maxSize = DefaultThumbnailSize
	}
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	ratio := min(float64(maxSize)/float64(b.Dx()), float64(maxSize)/float64(b.Dy()), 1)
	w := max(1, int(float64(b.Dx())*ratio+0.5))
	h := max(1, int(float64(b.Dy())*ratio+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst, nil
}

// Load decodes a PNG or JPEG file after checking its content type.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sniff %s: %w", path, err)
	}
	switch kind.Extension {
	case "png", "jpg":
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

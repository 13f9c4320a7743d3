package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Image is what the media layer needs to know about a stored post.
type Image struct {
	ID     int64
	Hash   string
	Mime   string
	Width  int
	Height int
}

// Warehouse lays files out as <root>/<kind>/<hash[:2]>/<hash>.
type Warehouse struct {
	Root string
}

func (w Warehouse) ImagePath(hash string) string { return w.path("images", hash) }
func (w Warehouse) ThumbPath(hash string) string { return w.path("thumbs", hash) }

func (w Warehouse) path(kind, hash string) string {
	prefix := hash
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return filepath.Join(w.Root, kind, prefix, hash)
}

// StoreImage copies r into the image slot for hash.
func (w Warehouse) StoreImage(hash string, r io.Reader) (int64, error) {
	dst := w.ImagePath(hash)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create image dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create image file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("write image file: %w", err)
	}
	return n, nil
}

// Remove deletes the image and its thumbnail. Missing files are ignored.
func (w Warehouse) Remove(hash string) error {
	for _, p := range []string{w.ImagePath(hash), w.ThumbPath(hash)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Package storage implements disk-backed public file storage for uploaded
// images. Files live under per-resource buckets ("categories", "products")
// and are referenced by path relative to the storage root.
package storage

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // register GIF decoder
	_ "image/png" // register PNG decoder

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

// Buckets for uploaded catalog images.
const (
	BucketCategories = "categories"
	BucketProducts   = "products"
)

const (
	// ThumbnailMaxSize bounds the longest edge of generated thumbnails.
	ThumbnailMaxSize = 256
	thumbnailQuality = 82
	thumbPrefix      = "thumb_"
)

// ErrInvalidPath is returned for relative paths that escape the storage root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Store is a disk-backed file store rooted at a public directory.
type Store struct {
	root string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the absolute storage root directory.
func (s *Store) Root() string {
	return s.root
}

// Save writes content under the given bucket with a fresh random name,
// preserving the original filename's extension, and returns the relative
// path ("<bucket>/<uuid><ext>"). A bounded JPEG thumbnail is written
// alongside on a best-effort basis.
func (s *Store) Save(bucket, filename string, content []byte) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return "", ErrInvalidPath
	}
	if len(content) == 0 {
		return "", errors.New("storage: empty content")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	rel := filepath.ToSlash(filepath.Join(bucket, name))

	if err := writeBytesToFile(filepath.Join(s.root, bucket, name), content); err != nil {
		return "", err
	}

	// Thumbnail generation never fails the upload.
	if decoded, _, err := image.Decode(bytes.NewReader(content)); err == nil {
		thumb := resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize)
		if encoded, err := encodeJPEG(thumb, thumbnailQuality); err == nil {
			_ = writeBytesToFile(filepath.Join(s.root, bucket, thumbPrefix+name), encoded)
		}
	}

	return rel, nil
}

// Delete removes the file at the given relative path along with its
// thumbnail. Deleting a file that no longer exists is not an error.
func (s *Store) Delete(rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	thumb := filepath.Join(filepath.Dir(abs), thumbPrefix+filepath.Base(abs))
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a file is present at the given relative path.
func (s *Store) Exists(rel string) bool {
	abs, err := s.resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// resolve maps a relative path onto the root, rejecting traversal.
func (s *Store) resolve(rel string) (string, error) {
	if rel == "" {
		return "", ErrInvalidPath
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, cleaned), nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ThumbnailPath returns the relative path of the thumbnail for rel.
func ThumbnailPath(rel string) string {
	dir, base := filepath.Split(filepath.FromSlash(rel))
	return filepath.ToSlash(filepath.Join(dir, thumbPrefix+base))
}

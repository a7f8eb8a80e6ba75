package upload

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gohoras/internal/errors"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store persists uploaded photos on disk and hands back opaque reference
// paths. Nothing downstream ever inspects the content, only the reference.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates an upload store rooted at dir, creating it if needed
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create uploads directory")
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// SavePhoto validates and persists one uploaded image, returning its
// serving path ("/uploads/<name>").
func (s *Store) SavePhoto(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxSize {
		return "", errors.ValidationError(fmt.Sprintf("file %s exceeds the %dMB limit", fh.Filename, s.maxSize/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", errors.ValidationError(fmt.Sprintf("file %s has an unsupported format, only images are allowed", fh.Filename))
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%09d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "failed to create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "failed to write upload file")
	}

	return "/uploads/" + name, nil
}

// SavePhotos persists a batch of uploads, stopping at the first failure
func (s *Store) SavePhotos(fhs []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		p, err := s.SavePhoto(fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Dir returns the on-disk directory the store writes to
func (s *Store) Dir() string {
	return s.dir
}

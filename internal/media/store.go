package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sabyy027/hostel-core/internal/config"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedType = errors.New("unsupported_image_type")
	ErrTooLarge        = errors.New("image_too_large")
	ErrNotFound        = errors.New("image_not_found")
)

// MaxImageSize bounds profile image uploads.
const MaxImageSize = 5 << 20

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

// Store keeps profile images on local disk under a flat directory. Refs are
// opaque uuid-based filenames; callers persist the ref, never the path.
type Store struct {
	dir string
	log *zap.Logger
}

func NewStore(p Params) (*Store, error) {
	dir := strings.TrimSpace(p.Config.MediaDir)
	if dir == "" {
		return nil, errors.New("media directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{
		dir: dir,
		log: p.Log.Named("media.store"),
	}, nil
}

// Save streams the upload to disk and returns its ref. The write goes
// through a temp file so a failed upload never leaves a partial ref behind.
func (s *Store) Save(r io.Reader, contentType string) (string, error) {
	ext, ok := extByType[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedType
	}

	ref := uuid.NewString() + ext
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(r, MaxImageSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	if written > MaxImageSize {
		return "", ErrTooLarge
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, ref)); err != nil {
		return "", err
	}

	s.log.Debug("stored image", zap.String("ref", ref), zap.Int64("bytes", written))
	return ref, nil
}

// Open returns a reader over a stored image. The ref is treated as a bare
// filename; anything resolving outside the store directory is rejected.
func (s *Store) Open(ref string) (io.ReadCloser, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Remove deletes a stored image. Missing refs are not an error.
func (s *Store) Remove(ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

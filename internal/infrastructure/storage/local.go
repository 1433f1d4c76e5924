package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"skillified/internal/domain"

	"github.com/google/uuid"
)

const MaxPictureSize = 5 << 20

var ErrInvalidRef = errors.New("invalid picture reference")

// Upload rejections are validation errors on the profile_picture field.
var (
	ErrUnsupportedType = domain.NewFieldError("profile_picture", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	ErrTooLarge        = domain.NewFieldError("profile_picture", "Ensure the image is at most 5 MB.")
)

var allowedExt = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// Local stores pictures under Dir and serves them below BaseURL. Refs are
// relative slash paths such as "profile_pics/<uuid>.png".
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage dir is empty")
	}
	if err := os.MkdirAll(filepath.Join(dir, "profile_pics"), 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		return "", ErrUnsupportedType
	}

	ref := path.Join("profile_pics", uuid.NewString()+ext)
	full := filepath.Join(l.dir, filepath.FromSlash(ref))

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxPictureSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxPictureSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return ref, nil
}

// Delete removes the file behind ref. A missing file is not an error.
func (l *Local) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return l.baseURL + "/" + strings.TrimLeft(ref, "/")
}

func (l *Local) resolve(ref string) (string, error) {
	clean := path.Clean("/" + ref)
	if ref == "" || clean == "/" || clean != "/"+ref {
		return "", ErrInvalidRef
	}
	return filepath.Join(l.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

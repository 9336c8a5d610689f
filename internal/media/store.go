package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrNoFile means no upload was attached or its name sanitised to nothing
	ErrNoFile = errors.New("media: no file selected or invalid filename")
	// ErrExtension means the upload's suffix is not accepted
	ErrExtension = errors.New("media: invalid file extension")
)

// Store writes uploads flat into one directory. A later upload with the same
// sanitised name overwrites the earlier file.
type Store struct {
	fs  afero.Fs
	dir string
	log *zap.Logger
}

// NewStore creates dir on fs if needed
func NewStore(fs afero.Fs, dir string, log *zap.Logger) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{fs: fs, dir: dir, log: log}, nil
}

// NewDiskStore creates a Store on the host filesystem
func NewDiskStore(dir string, log *zap.Logger) (*Store, error) {
	return NewStore(afero.NewOsFs(), dir, log)
}

// Save validates and stores an upload, returning the stored filename
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", ErrNoFile
	}
	if !Allowed(fh.Filename) {
		return "", ErrExtension
	}
	name := SecureFilename(fh.Filename)
	if name == "" {
		return "", ErrNoFile
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, name)
	dst, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		s.discard(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		s.discard(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	s.log.Debug("stored upload", zap.String("filename", name), zap.Int64("bytes", n))
	return name, nil
}

// discard removes a partially written upload
func (s *Store) discard(path string) {
	if err := s.fs.Remove(path); err != nil {
		s.log.Warn("remove partial upload", zap.String("path", path), zap.Error(err))
	}
}

// SaveOptional stores an upload when one is present and acceptable. Missing,
// rejected or unwritable files yield an empty name; write failures are logged.
func (s *Store) SaveOptional(fh *multipart.FileHeader) string {
	name, err := s.Save(fh)
	if err != nil {
		if !errors.Is(err, ErrNoFile) && !errors.Is(err, ErrExtension) {
			s.log.Warn("upload dropped", zap.Error(err))
		}
		return ""
	}
	return name
}

// Serve streams a stored file by name
func (s *Store) Serve(c echo.Context, name string) error {
	if name != SecureFilename(name) || name == "" {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	f, err := s.fs.Open(filepath.Join(s.dir, name))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	http.ServeContent(c.Response(), c.Request(), name, info.ModTime(), f)
	return nil
}

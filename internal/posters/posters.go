// Package posters stores uploaded movie poster images in a directory that is served as static files.
package posters

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/myk4040okothogodo/moviecatalog/internal/validator"
)

// AllowedExtensions is compared against the file extension exactly, so ".PNG" is rejected.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png"}

var ErrExtensionNotAllowed = errors.New("only .jpg, .jpeg and .png extensions allowed")

// Store writes posters into Dir.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Save copies src to a new file in the store directory and returns the generated file name. The name
// is a random UUID followed by the extension of filename, which may still carry the quotes of a
// Content-Disposition value. Nothing touches the disk when the extension is not allowed.
func (s *Store) Save(filename string, src io.Reader) (string, error) {
	ext := filepath.Ext(strings.Trim(filename, `"`))
	if !validator.In(ext, AllowedExtensions...) {
		return "", ErrExtensionNotAllowed
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create poster directory: %w", err)
	}

	name := uuid.NewString() + ext

	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create poster file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write poster file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close poster file: %w", err)
	}

	return name, nil
}

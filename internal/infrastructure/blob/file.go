package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/neuhauss/example-gemini/internal/domain/repository"
)

var _ repository.BlobStore = (*FileStore)(nil)

const tempFilePrefix = ".blob-tmp-"

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// FileStore guarda cada clave como <dir>/<clave>.json. Las escrituras son
// atómicas (archivo temporal + fsync + rename), así un lector nunca ve un
// archivo a medio escribir.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: crear directorio %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir directorio base.
func (f *FileStore) Dir() string { return f.dir }

// Path ruta del archivo de una clave.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	raw, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("blob: leer %s: %w", key, err)
	}
	return string(raw), true, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	if err := writeFileAtomic(f.Path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("blob: escribir %s: %w", key, err)
	}
	return nil
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op después del rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir temporal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("renombrar a %s: %w", filename, err)
	}
	return nil
}

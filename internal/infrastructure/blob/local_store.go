package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore guarda blobs (imágenes subidas) en disco local y construye URLs
// públicas absolutas. El directorio se sirve estáticamente bajo /static/uploads.
type LocalStore struct {
	dir           string
	publicBaseURL string
}

// NewLocalStore crea el store y asegura que el directorio exista.
func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Save persiste los bytes con un nombre aleatorio (se conserva la extensión
// del original) y retorna la URL pública absoluta y la ruta relativa.
func (s *LocalStore) Save(originalName string, data []byte) (url, path string, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".bin"
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", "", fmt.Errorf("guardar archivo: %w", err)
	}
	rel := "/static/uploads/" + name
	return s.publicBaseURL + rel, rel, nil
}

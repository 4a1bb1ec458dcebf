package infra

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrArchivoInvalido marks an upload that was rejected before reaching disk
// (wrong content type or over the size cap).
var ErrArchivoInvalido = errors.New("archivo inválido")

// Storage writes uploaded images under baseDir/<categoria>/ and returns the
// public URL path the router serves them at. Only image/* uploads up to
// maxBytes are accepted.
type Storage struct {
	baseDir  string
	maxBytes int64
}

func NewStorage(baseDir string, maxBytes int64) *Storage {
	return &Storage{baseDir: baseDir, maxBytes: maxBytes}
}

// GuardarImagen validates and stores one uploaded file. The stored name is
// <categoria>-<unix ms>-<random>.<ext> so concurrent uploads never collide.
func (s *Storage) GuardarImagen(fh *multipart.FileHeader, categoria string) (string, error) {
	if fh.Size > s.maxBytes {
		return "", fmt.Errorf("%w: supera el tamaño máximo permitido", ErrArchivoInvalido)
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: solo se permiten imágenes, recibido %q", ErrArchivoInvalido, contentType)
	}

	dir := filepath.Join(s.baseDir, categoria)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}

	nombre := fmt.Sprintf("%s-%d-%s%s",
		categoria, time.Now().UnixMilli(), sufijoAleatorio(), strings.ToLower(filepath.Ext(fh.Filename)))

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("storage: abrir subida: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, nombre))
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}

	return path.Join("/uploads", categoria, nombre), nil
}

// Eliminar removes a previously stored image by its public URL path. Missing
// files are not an error: the row is already gone, the file is best-effort.
func (s *Storage) Eliminar(urlPath string) error {
	rel, ok := strings.CutPrefix(urlPath, "/uploads/")
	if !ok {
		return nil
	}
	// Reject traversal out of the upload root.
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// BaseDir is the on-disk root the router mounts at /uploads.
func (s *Storage) BaseDir() string { return s.baseDir }

func sufijoAleatorio() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(b)
}

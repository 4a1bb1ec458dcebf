package infra

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archivoDePrueba(t *testing.T, nombre, contentType string, contenido []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="imagen"; filename="`+nombre+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(contenido)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	reader := multipart.NewReader(&buf, mw.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["imagen"][0]
}

func TestGuardarImagenEscribeYDevuelveURL(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, 1024)

	fh := archivoDePrueba(t, "foto.png", "image/png", []byte("png-bytes"))
	url, err := s.GuardarImagen(fh, "combinaciones")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/combinaciones/combinaciones-"), "url = %s", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestGuardarImagenRechazaNoImagen(t *testing.T) {
	s := NewStorage(t.TempDir(), 1024)

	fh := archivoDePrueba(t, "doc.pdf", "application/pdf", []byte("%PDF"))
	_, err := s.GuardarImagen(fh, "estampados")
	assert.ErrorIs(t, err, ErrArchivoInvalido)
}

func TestGuardarImagenRechazaPorTamano(t *testing.T) {
	s := NewStorage(t.TempDir(), 4)

	fh := archivoDePrueba(t, "foto.jpg", "image/jpeg", []byte("demasiado grande"))
	_, err := s.GuardarImagen(fh, "estampados")
	assert.ErrorIs(t, err, ErrArchivoInvalido)
}

func TestGuardarImagenNombresUnicos(t *testing.T) {
	s := NewStorage(t.TempDir(), 1024)

	fh := archivoDePrueba(t, "foto.png", "image/png", []byte("a"))
	url1, err := s.GuardarImagen(fh, "combinaciones")
	require.NoError(t, err)
	url2, err := s.GuardarImagen(fh, "combinaciones")
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
}

func TestEliminarImagen(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, 1024)

	fh := archivoDePrueba(t, "foto.png", "image/png", []byte("a"))
	url, err := s.GuardarImagen(fh, "combinaciones")
	require.NoError(t, err)

	require.NoError(t, s.Eliminar(url))
	_, statErr := os.Stat(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	assert.True(t, os.IsNotExist(statErr))

	// Missing files and foreign paths are not errors.
	assert.NoError(t, s.Eliminar(url))
	assert.NoError(t, s.Eliminar("/otra/ruta.png"))
	assert.NoError(t, s.Eliminar("/uploads/../../etc/passwd"))
}

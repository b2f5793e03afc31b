package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_GuardarLeerBorrar(t *testing.T) {
	base := afero.NewMemMapFs()
	s, err := NewFileStorage(base, "/data")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "customers/c1/d1/contrato.pdf", strings.NewReader("%PDF")))

	ok, err := afero.Exists(base, "/data/customers/c1/d1/contrato.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, "customers/c1/d1/contrato.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF", string(body))

	require.NoError(t, s.Delete(ctx, "customers/c1/d1/contrato.pdf"))
	require.NoError(t, s.Delete(ctx, "customers/c1/d1/contrato.pdf"))
	ok, err = s.Exists("customers/c1/d1/contrato.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_NoSaleDeLaRaiz(t *testing.T) {
	base := afero.NewMemMapFs()
	s, err := NewFileStorage(base, "/data")
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "../../etc/passwd", strings.NewReader("x")))

	ok, err := afero.Exists(base, "/etc/passwd")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = afero.Exists(base, "/data/etc/passwd")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStorage_RutaVacia(t *testing.T) {
	s, err := NewFileStorage(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Error(t, s.Save(context.Background(), "  ", strings.NewReader("x")))
}

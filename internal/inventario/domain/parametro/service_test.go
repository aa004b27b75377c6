package parametro

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func armarServicio(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:parametro_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Parametro{}))
	return NewService(NewRepository(db))
}

func TestCrearNormalizaGrupoYCodigo(t *testing.T) {
	s := armarServicio(t)

	p, err := s.Crear(context.Background(), CrearParametroRequestDto{
		Grupo:  " tipo_evento ",
		Codigo: " incidente ",
		Nombre: "Incidente",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, GrupoTipoEvento, p.Grupo)
	assert.Equal(t, "INCIDENTE", p.Codigo)
}

func TestValidarCodigoSoloAceptaActivos(t *testing.T) {
	s := armarServicio(t)
	ctx := context.Background()

	p, err := s.Crear(ctx, CrearParametroRequestDto{
		Grupo:  GrupoTipoRespaldo,
		Codigo: "SNAPSHOT",
		Nombre: "Snapshot de disco",
	}, 1)
	require.NoError(t, err)

	require.NoError(t, s.ValidarCodigo(ctx, GrupoTipoRespaldo, "SNAPSHOT"))
	assert.ErrorIs(t, s.ValidarCodigo(ctx, GrupoTipoRespaldo, "CINTA"), ErrCodigoNoValido)

	_, err = s.Desactivar(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, s.ValidarCodigo(ctx, GrupoTipoRespaldo, "SNAPSHOT"), ErrCodigoNoValido,
		"un código inactivo deja de ser válido")

	_, err = s.Reactivar(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.NoError(t, s.ValidarCodigo(ctx, GrupoTipoRespaldo, "SNAPSHOT"))
}

func TestCrearExigeNombre(t *testing.T) {
	s := armarServicio(t)

	_, err := s.Crear(context.Background(), CrearParametroRequestDto{
		Grupo:  GrupoTipoEvento,
		Codigo: "MANTENIMIENTO",
	}, 1)
	assert.ErrorIs(t, err, ErrEntradaInvalida)
}

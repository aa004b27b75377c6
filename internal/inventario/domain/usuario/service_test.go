package usuario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

func TestDesactivarUsuarioConRolActivo(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	svc := NewService(repo)
	refs := crearReferencias(t, db)
	ctx := context.Background()

	a, err := repo.AsignarRol(ctx, asignacionDe(refs, 1))
	require.NoError(t, err)

	_, err = svc.Desactivar(ctx, refs.usuario.ID, 1)
	assert.ErrorIs(t, err, ErrRolesActivos)

	// El usuario sigue activo y la asignación no quedó huérfana.
	var u Usuario
	require.NoError(t, db.First(&u, refs.usuario.ID).Error)
	assert.Equal(t, inventario.EstadoActivo, u.Estado)

	_, err = repo.RevocarRol(ctx, a.ID, 1)
	require.NoError(t, err)

	baja, err := svc.Desactivar(ctx, refs.usuario.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, baja.Estado)
}

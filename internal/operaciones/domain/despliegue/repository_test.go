package despliegue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/bitacora"
)

func abrirBase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:despliegue_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Despliegue{},
		&bitacora.DespliegueBitacora{},
		&inventario.Sistema{},
		&inventario.Componente{},
		&inventario.Maquina{},
	))
	return db
}

func componenteYMaquina(t *testing.T, db *gorm.DB) (inventario.Componente, inventario.Maquina) {
	t.Helper()
	s := inventario.Sistema{Codigo: "SIGA", Nombre: "Sistema de gestión", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&s).Error)
	c := inventario.Componente{IDSistema: s.ID, Nombre: "api", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&c).Error)
	m := inventario.Maquina{Nombre: "srv-app-01", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&m).Error)
	return c, m
}

func desplieguePrueba(t *testing.T, db *gorm.DB, repo Repository) Despliegue {
	t.Helper()
	c, m := componenteYMaquina(t, db)
	d, err := repo.Crear(context.Background(), Despliegue{
		IDComponente:     c.ID,
		IDMaquina:        m.ID,
		EstadoDespliegue: "SOLICITADO",
		FechaSolicitud:   time.Now().UTC(),
		Solicitante:      "unidad de sistemas",
		Registro:         inventario.NuevoRegistro(1),
	})
	require.NoError(t, err)
	return d
}

func TestCrearRechazaComponenteInactivo(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	c, m := componenteYMaquina(t, db)

	require.NoError(t, db.Model(&inventario.Componente{}).
		Where("id = ?", c.ID).Update("estado", inventario.EstadoInactivo).Error)

	_, err := repo.Crear(context.Background(), Despliegue{
		IDComponente:     c.ID,
		IDMaquina:        m.ID,
		EstadoDespliegue: "SOLICITADO",
		FechaSolicitud:   time.Now().UTC(),
		Registro:         inventario.NuevoRegistro(1),
	})
	assert.ErrorIs(t, err, ErrReferenciaInactiva)

	var total int64
	require.NoError(t, db.Model(&Despliegue{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestTransicionarRecorridoCompleto(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	d := desplieguePrueba(t, db, repo)
	ctx := context.Background()

	_, _, err := repo.Transicionar(ctx, d.ID, "APROBADO", 3)
	require.NoError(t, err)
	actualizado, fila, err := repo.Transicionar(ctx, d.ID, "COMPLETADO", 3)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETADO", actualizado.EstadoDespliegue)
	assert.Equal(t, "APROBADO", fila.EstadoAnterior)

	filas, err := repo.ListarBitacora(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, filas, 2)
	assert.Equal(t, "SOLICITADO", filas[0].EstadoAnterior)
	assert.Equal(t, "APROBADO", filas[0].EstadoActual)
	assert.Equal(t, "APROBADO", filas[1].EstadoAnterior)
	assert.Equal(t, "COMPLETADO", filas[1].EstadoActual)
}

func TestListarFiltraPorEstadoYMaquina(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	d := desplieguePrueba(t, db, repo)
	ctx := context.Background()

	despliegues, err := repo.Listar(ctx, ListarDespliegueRequestDto{
		Page: 1, PageSize: 10, Estado: "SOLICITADO", IDMaquina: d.IDMaquina,
	})
	require.NoError(t, err)
	require.Len(t, despliegues, 1)

	despliegues, err = repo.Listar(ctx, ListarDespliegueRequestDto{
		Page: 1, PageSize: 10, Estado: "COMPLETADO",
	})
	require.NoError(t, err)
	assert.Empty(t, despliegues)
}

func TestCambiarEstadoRegistroEsIdempotente(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	d := desplieguePrueba(t, db, repo)
	ctx := context.Background()

	inactivo, err := repo.CambiarEstadoRegistro(ctx, d.ID, inventario.EstadoInactivo, 3)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, inactivo.Estado)

	otraVez, err := repo.CambiarEstadoRegistro(ctx, d.ID, inventario.EstadoInactivo, 3)
	require.NoError(t, err)
	assert.Equal(t, inventario.EstadoInactivo, otraVez.Estado)

	// La baja lógica no toca el flujo ni la bitácora.
	filas, err := repo.ListarBitacora(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, filas)
}

func TestTransicionarConEscritorConcurrente(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	d := desplieguePrueba(t, db, repo)

	// Otra sesión cancela el despliegue entre el SELECT y el UPDATE
	// condicional de la aprobación: el UPDATE no encuentra la fila en el
	// estado leído y la transacción se revierte completa.
	armado := true
	require.NoError(t, db.Callback().Query().After("gorm:query").
		Register("escritor_concurrente", func(tx *gorm.DB) {
			if !armado {
				return
			}
			if _, ok := tx.Statement.Dest.(*Despliegue); !ok {
				return
			}
			armado = false
			err := tx.Session(&gorm.Session{NewDB: true}).
				Exec("UPDATE despliegues SET estado_despliegue = ? WHERE id = ?", "CANCELADO", d.ID).Error
			require.NoError(t, err)
		}))
	defer db.Callback().Query().Remove("escritor_concurrente")

	_, _, err := repo.Transicionar(context.Background(), d.ID, "APROBADO", 3)
	assert.ErrorIs(t, err, ErrConflictoTransicion)

	var filas int64
	require.NoError(t, db.Model(&bitacora.DespliegueBitacora{}).
		Where("id_despliegue = ?", d.ID).Count(&filas).Error)
	assert.Zero(t, filas, "el perdedor no escribe bitácora")
}

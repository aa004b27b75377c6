package evento

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/bitacora"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/estado"
)

func abrirBase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:evento_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Evento{},
		&bitacora.EventoBitacora{},
		&InfraAfectada{},
		&inventario.DataCenter{},
		&inventario.Hardware{},
		&inventario.Servidor{},
		&inventario.Maquina{},
	))
	return db
}

func eventoDePrueba(t *testing.T, db *gorm.DB) Evento {
	t.Helper()
	e := Evento{
		CodTipoEvento: "INCIDENTE",
		Descripcion:   "caída del servicio de correo",
		FechaEvento:   time.Now().UTC(),
		EstadoEvento:  "ABIERTO",
		Registro:      inventario.NuevoRegistro(1),
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func TestTransicionarEscribeUnaFilaDeBitacora(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	actualizado, fila, err := repo.Transicionar(context.Background(), e.ID, "EN_ATENCION", 7)
	require.NoError(t, err)
	assert.Equal(t, "EN_ATENCION", actualizado.EstadoEvento)
	assert.Equal(t, "ABIERTO", fila.EstadoAnterior)
	assert.Equal(t, "EN_ATENCION", fila.EstadoActual)
	assert.Equal(t, uint(7), fila.UsuarioCreacion)

	var total int64
	require.NoError(t, db.Model(&bitacora.EventoBitacora{}).
		Where("id_evento = ?", e.ID).Count(&total).Error)
	assert.Equal(t, int64(1), total, "exactamente una fila por transición")
}

func TestTransicionarInvalidaNoEscribeNada(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	_, _, err := repo.Transicionar(context.Background(), e.ID, "ARCHIVADO", 7)
	var invalida *estado.TransicionInvalidaError
	require.True(t, errors.As(err, &invalida))

	var total int64
	require.NoError(t, db.Model(&bitacora.EventoBitacora{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)

	recargado, err := repo.Leer(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABIERTO", recargado.EstadoEvento, "el estado no debe cambiar")
}

func TestTransicionarRechazaNoCambio(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	_, _, err := repo.Transicionar(context.Background(), e.ID, "ABIERTO", 7)
	var invalida *estado.TransicionInvalidaError
	require.True(t, errors.As(err, &invalida))

	var total int64
	require.NoError(t, db.Model(&bitacora.EventoBitacora{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestTransicionarEventoInexistente(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)

	_, _, err := repo.Transicionar(context.Background(), 999, "EN_ATENCION", 7)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestBitacoraConservaElOrdenDeCommit(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)
	ctx := context.Background()

	for _, destino := range []string{"EN_ATENCION", "RESUELTO", "CERRADO"} {
		_, _, err := repo.Transicionar(ctx, e.ID, destino, 7)
		require.NoError(t, err)
	}

	filas, err := repo.ListarBitacora(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, filas, 3)
	assert.Equal(t, "ABIERTO", filas[0].EstadoAnterior)
	assert.Equal(t, "EN_ATENCION", filas[0].EstadoActual)
	assert.Equal(t, "EN_ATENCION", filas[1].EstadoAnterior)
	assert.Equal(t, "RESUELTO", filas[1].EstadoActual)
	assert.Equal(t, "RESUELTO", filas[2].EstadoAnterior)
	assert.Equal(t, "CERRADO", filas[2].EstadoActual)
	// Encadenamiento: cada anterior es el actual de la fila previa.
	for i := 1; i < len(filas); i++ {
		assert.Equal(t, filas[i-1].EstadoActual, filas[i].EstadoAnterior)
	}
}

func TestListarBitacoraEventoInexistente(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)

	_, err := repo.ListarBitacora(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestVincularInfraExigeAlMenosUnaReferencia(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	_, err := repo.VincularInfra(context.Background(), InfraAfectada{
		IDEvento: e.ID,
		Registro: inventario.NuevoRegistro(1),
	})
	assert.ErrorIs(t, err, ErrInfraSinReferencia)
}

func TestVincularInfraRechazaReferenciaInactiva(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	m := inventario.Maquina{Nombre: "srv-app-01", Registro: inventario.NuevoRegistro(1)}
	m.Estado = inventario.EstadoInactivo
	require.NoError(t, db.Create(&m).Error)

	_, err := repo.VincularInfra(context.Background(), InfraAfectada{
		IDEvento:  e.ID,
		IDMaquina: &m.ID,
		Registro:  inventario.NuevoRegistro(1),
	})
	assert.ErrorIs(t, err, ErrReferenciaInactiva)

	var total int64
	require.NoError(t, db.Model(&InfraAfectada{}).Count(&total).Error)
	assert.Equal(t, int64(0), total, "la validación corre dentro de la transacción")
}

func TestVincularInfraConMaquinaActiva(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	m := inventario.Maquina{Nombre: "srv-app-02", Registro: inventario.NuevoRegistro(1)}
	require.NoError(t, db.Create(&m).Error)

	v, err := repo.VincularInfra(context.Background(), InfraAfectada{
		IDEvento:  e.ID,
		IDMaquina: &m.ID,
		Registro:  inventario.NuevoRegistro(1),
	})
	require.NoError(t, err)
	assert.NotZero(t, v.ID)

	vinculos, err := repo.ListarInfra(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, vinculos, 1)
}

func TestTransicionarConEscritorConcurrente(t *testing.T) {
	db := abrirBase(t)
	repo := NewRepository(db)
	e := eventoDePrueba(t, db)

	// Simula otra sesión que mueve el evento entre el SELECT y el UPDATE
	// condicional: la fila ya no está en el estado leído y la transición
	// del perdedor debe abortar sin escribir bitácora.
	armado := true
	require.NoError(t, db.Callback().Query().After("gorm:query").
		Register("escritor_concurrente", func(tx *gorm.DB) {
			if !armado {
				return
			}
			if _, ok := tx.Statement.Dest.(*Evento); !ok {
				return
			}
			armado = false
			err := tx.Session(&gorm.Session{NewDB: true}).
				Exec("UPDATE eventos SET estado_evento = ? WHERE id = ?", "EN_ATENCION", e.ID).Error
			require.NoError(t, err)
		}))
	defer db.Callback().Query().Remove("escritor_concurrente")

	_, _, err := repo.Transicionar(context.Background(), e.ID, "EN_ATENCION", 7)
	assert.ErrorIs(t, err, ErrConflictoTransicion)

	var filas int64
	require.NoError(t, db.Model(&bitacora.EventoBitacora{}).
		Where("id_evento = ?", e.ID).Count(&filas).Error)
	assert.Zero(t, filas, "el perdedor no escribe bitácora")
}

package bitacora

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/estado"
)

// El registro de bitácora siempre corre sobre la transacción del cambio que
// lo origina: el coordinador de transacciones pasa aquí su *gorm.DB de
// transacción y el commit o rollback cubre a ambos escritos. Este paquete
// no garantiza idempotencia; esa responsabilidad es del coordinador.

// RegistrarEvento agrega la fila de bitácora de una transición de evento.
func RegistrarEvento(ctx context.Context, tx *gorm.DB, idEvento uint, tr estado.Transicion, actor uint) (EventoBitacora, error) {
	fila := EventoBitacora{
		IDEvento:        idEvento,
		EstadoAnterior:  tr.Anterior,
		EstadoActual:    tr.Actual,
		UsuarioCreacion: actor,
		FechaCreacion:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&fila).Error; err != nil {
		return EventoBitacora{}, fmt.Errorf("falla al registrar bitácora del evento %d: %w", idEvento, err)
	}
	return fila, nil
}

// RegistrarDespliegue agrega la fila de bitácora de una transición de despliegue.
func RegistrarDespliegue(ctx context.Context, tx *gorm.DB, idDespliegue uint, tr estado.Transicion, actor uint) (DespliegueBitacora, error) {
	fila := DespliegueBitacora{
		IDDespliegue:    idDespliegue,
		EstadoAnterior:  tr.Anterior,
		EstadoActual:    tr.Actual,
		UsuarioCreacion: actor,
		FechaCreacion:   time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&fila).Error; err != nil {
		return DespliegueBitacora{}, fmt.Errorf("falla al registrar bitácora del despliegue %d: %w", idDespliegue, err)
	}
	return fila, nil
}

// ListarEvento devuelve la bitácora de un evento ordenada por fecha de
// creación, con el id como desempate (orden de inserción).
func ListarEvento(ctx context.Context, db *gorm.DB, idEvento uint) ([]EventoBitacora, error) {
	var filas []EventoBitacora
	err := db.WithContext(ctx).
		Where("id_evento = ?", idEvento).
		Order("fecha_creacion ASC, id ASC").
		Find(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}

// ListarDespliegue devuelve la bitácora de un despliegue en orden de commit.
func ListarDespliegue(ctx context.Context, db *gorm.DB, idDespliegue uint) ([]DespliegueBitacora, error) {
	var filas []DespliegueBitacora
	err := db.WithContext(ctx).
		Where("id_despliegue = ?", idDespliegue).
		Order("fecha_creacion ASC, id ASC").
		Find(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}

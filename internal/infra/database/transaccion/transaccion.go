package transaccion

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrTransaccion señala una falla cruda del almacén dentro de un alcance de
// escritura. Cuando se devuelve, el rollback ya ocurrió; el núcleo no
// reintenta porque las escrituras no son idempotentes.
var ErrTransaccion = errors.New("falla de transacción en el almacén")

// Ejecutar abre el alcance de escritura: fn corre dentro de una transacción
// con rollback garantizado ante cualquier error (incluida la cancelación del
// contexto) y commit solo si fn termina sin error. Los repositorios son el
// único código que corre dentro de fn; ningún otro componente abre,
// confirma ni revierte transacciones.
func Ejecutar(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// EnvolverFallaAlmacen marca un error del almacén que ningún mapeo de
// dominio reconoció. Los repositorios lo usan como último caso después de
// mapear códigos de Postgres a errores de dominio.
func EnvolverFallaAlmacen(operacion string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransaccion, operacion, err)
}

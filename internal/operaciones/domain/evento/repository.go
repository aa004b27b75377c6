package evento

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/transaccion"
	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/bitacora"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/estado"
)

type Repository interface {
	Crear(ctx context.Context, e Evento) (Evento, error)
	Leer(ctx context.Context, id uint) (Evento, error)
	Listar(ctx context.Context, filtro ListarEventoRequestDto) ([]Evento, error)
	Actualizar(ctx context.Context, e Evento) (Evento, error)
	CambiarEstadoRegistro(ctx context.Context, id uint, nuevo string, actor uint) (Evento, error)

	// Transicionar mueve estado_evento dentro del flujo configurado y graba
	// la fila de bitácora en la misma transacción. La actualización es
	// condicional sobre el estado leído; si otra transacción ganó la
	// carrera devuelve ErrConflictoTransicion y no escribe nada.
	Transicionar(ctx context.Context, id uint, nuevo string, actor uint) (Evento, EventoBitacora, error)
	ListarBitacora(ctx context.Context, idEvento uint) ([]EventoBitacora, error)

	VincularInfra(ctx context.Context, v InfraAfectada) (InfraAfectada, error)
	DesvincularInfra(ctx context.Context, idVinculo uint, actor uint) (InfraAfectada, error)
	ListarInfra(ctx context.Context, idEvento uint) ([]InfraAfectada, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

func (r *implRepository) Crear(ctx context.Context, e Evento) (Evento, error) {
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		return Evento{}, transaccion.EnvolverFallaAlmacen("crear evento", err)
	}
	return e, nil
}

func (r *implRepository) Leer(ctx context.Context, id uint) (Evento, error) {
	var e Evento
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Evento{}, ErrNoEncontrado
	}
	if err != nil {
		return Evento{}, err
	}
	return e, nil
}

func (r *implRepository) Listar(ctx context.Context, filtro ListarEventoRequestDto) ([]Evento, error) {
	var eventos []Evento
	q := r.db.WithContext(ctx).Order("fecha_evento DESC, id DESC").
		Limit(filtro.PageSize).
		Offset((filtro.Page - 1) * filtro.PageSize)
	if filtro.Estado != "" {
		q = q.Where("estado_evento = ?", filtro.Estado)
	}
	if filtro.Tipo != "" {
		q = q.Where("cod_tipo_evento = ?", filtro.Tipo)
	}
	err := q.Find(&eventos).Error
	return eventos, err
}

func (r *implRepository) Actualizar(ctx context.Context, e Evento) (Evento, error) {
	res := r.db.WithContext(ctx).Model(&Evento{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"descripcion":          e.Descripcion,
			"responsables":         e.Responsables,
			"respaldo":             e.Respaldo,
			"estado":               e.Estado,
			"fecha_modificacion":   e.FechaModificacion,
			"usuario_modificacion": e.UsuarioModificacion,
		})
	if res.Error != nil {
		return Evento{}, transaccion.EnvolverFallaAlmacen("actualizar evento", res.Error)
	}
	if res.RowsAffected == 0 {
		return Evento{}, ErrNoEncontrado
	}
	return e, nil
}

func (r *implRepository) CambiarEstadoRegistro(ctx context.Context, id uint, nuevo string, actor uint) (Evento, error) {
	e, err := r.Leer(ctx, id)
	if err != nil {
		return Evento{}, err
	}
	if e.Estado == nuevo {
		return e, nil
	}
	e.Estado = nuevo
	e.MarcarModificacion(actor)
	return r.Actualizar(ctx, e)
}

func (r *implRepository) Transicionar(ctx context.Context, id uint, nuevo string, actor uint) (Evento, EventoBitacora, error) {
	flujo := estado.FlujoEvento()
	var e Evento
	var fila EventoBitacora

	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.First(&e, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		if err != nil {
			return err
		}

		tr, err := flujo.Transicionar(e.EstadoEvento, nuevo)
		if err != nil {
			return err
		}

		// Actualización condicional sobre el estado leído: si otra
		// transacción movió el evento entre el SELECT y este UPDATE,
		// RowsAffected queda en cero y toda la transacción se revierte.
		e.MarcarModificacion(actor)
		res := tx.Model(&Evento{}).
			Where("id = ? AND estado_evento = ?", id, tr.Anterior).
			Updates(map[string]interface{}{
				"estado_evento":        tr.Actual,
				"fecha_modificacion":   e.FechaModificacion,
				"usuario_modificacion": e.UsuarioModificacion,
			})
		if res.Error != nil {
			return transaccion.EnvolverFallaAlmacen("transicionar evento", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflictoTransicion
		}
		e.EstadoEvento = tr.Actual

		fila, err = bitacora.RegistrarEvento(ctx, tx, id, tr, actor)
		return err
	})
	if err != nil {
		return Evento{}, EventoBitacora{}, err
	}
	return e, fila, nil
}

func (r *implRepository) ListarBitacora(ctx context.Context, idEvento uint) ([]EventoBitacora, error) {
	if _, err := r.Leer(ctx, idEvento); err != nil {
		return nil, err
	}
	return bitacora.ListarEvento(ctx, r.db, idEvento)
}

// referenciaActiva valida que el activo exista con estado ACTIVO.
func referenciaActiva(tx *gorm.DB, modelo interface{}, id uint) error {
	var total int64
	err := tx.Model(modelo).
		Where("id = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&total).Error
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrReferenciaInactiva
	}
	return nil
}

func (r *implRepository) VincularInfra(ctx context.Context, v InfraAfectada) (InfraAfectada, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&Evento{}).Where("id = ?", v.IDEvento).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return ErrNoEncontrado
		}
		if v.IDDataCenter == nil && v.IDHardware == nil && v.IDServidor == nil && v.IDMaquina == nil {
			return ErrInfraSinReferencia
		}
		if v.IDDataCenter != nil {
			if err := referenciaActiva(tx, &inventario.DataCenter{}, *v.IDDataCenter); err != nil {
				return err
			}
		}
		if v.IDHardware != nil {
			if err := referenciaActiva(tx, &inventario.Hardware{}, *v.IDHardware); err != nil {
				return err
			}
		}
		if v.IDServidor != nil {
			if err := referenciaActiva(tx, &inventario.Servidor{}, *v.IDServidor); err != nil {
				return err
			}
		}
		if v.IDMaquina != nil {
			if err := referenciaActiva(tx, &inventario.Maquina{}, *v.IDMaquina); err != nil {
				return err
			}
		}
		return tx.Create(&v).Error
	})
	if err != nil {
		return InfraAfectada{}, err
	}
	return v, nil
}

func (r *implRepository) DesvincularInfra(ctx context.Context, idVinculo uint, actor uint) (InfraAfectada, error) {
	var v InfraAfectada
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.First(&v, "id = ?", idVinculo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		if err != nil {
			return err
		}
		if v.Estado == inventario.EstadoInactivo {
			return nil
		}
		v.Estado = inventario.EstadoInactivo
		v.MarcarModificacion(actor)
		return tx.Model(&InfraAfectada{}).Where("id = ?", v.ID).
			Updates(map[string]interface{}{
				"estado":               v.Estado,
				"fecha_modificacion":   v.FechaModificacion,
				"usuario_modificacion": v.UsuarioModificacion,
			}).Error
	})
	if err != nil {
		return InfraAfectada{}, err
	}
	return v, nil
}

func (r *implRepository) ListarInfra(ctx context.Context, idEvento uint) ([]InfraAfectada, error) {
	var vinculos []InfraAfectada
	err := r.db.WithContext(ctx).
		Where("id_evento = ?", idEvento).
		Order("id ASC").
		Find(&vinculos).Error
	return vinculos, err
}

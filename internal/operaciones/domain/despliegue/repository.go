package despliegue

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
	// Crear valida dentro de la transacción que el componente y la máquina
	// existan y estén ACTIVOS; si la validación falla no queda ninguna fila.
	Crear(ctx context.Context, d Despliegue) (Despliegue, error)
	Leer(ctx context.Context, id uint) (Despliegue, error)
	Listar(ctx context.Context, filtro ListarDespliegueRequestDto) ([]Despliegue, error)
	Actualizar(ctx context.Context, d Despliegue) (Despliegue, error)
	CambiarEstadoRegistro(ctx context.Context, id uint, nuevo string, actor uint) (Despliegue, error)

	// Transicionar mueve estado_despliegue dentro del flujo configurado y
	// graba la fila de bitácora en la misma transacción, con actualización
	// condicional sobre el estado leído.
	Transicionar(ctx context.Context, id uint, nuevo string, actor uint) (Despliegue, DespliegueBitacora, error)
	ListarBitacora(ctx context.Context, idDespliegue uint) ([]DespliegueBitacora, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

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

func (r *implRepository) Crear(ctx context.Context, d Despliegue) (Despliegue, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := referenciaActiva(tx, &inventario.Componente{}, d.IDComponente); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &inventario.Maquina{}, d.IDMaquina); err != nil {
			return err
		}
		return tx.Create(&d).Error
	})
	if err != nil {
		return Despliegue{}, err
	}
	return d, nil
}

func (r *implRepository) Leer(ctx context.Context, id uint) (Despliegue, error) {
	var d Despliegue
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Despliegue{}, ErrNoEncontrado
	}
	if err != nil {
		return Despliegue{}, err
	}
	return d, nil
}

func (r *implRepository) Listar(ctx context.Context, filtro ListarDespliegueRequestDto) ([]Despliegue, error) {
	var despliegues []Despliegue
	q := r.db.WithContext(ctx).Order("fecha_solicitud DESC, id DESC").
		Limit(filtro.PageSize).
		Offset((filtro.Page - 1) * filtro.PageSize)
	if filtro.Estado != "" {
		q = q.Where("estado_despliegue = ?", filtro.Estado)
	}
	if filtro.IDComponente != 0 {
		q = q.Where("id_componente = ?", filtro.IDComponente)
	}
	if filtro.IDMaquina != 0 {
		q = q.Where("id_maquina = ?", filtro.IDMaquina)
	}
	err := q.Find(&despliegues).Error
	return despliegues, err
}

func (r *implRepository) Actualizar(ctx context.Context, d Despliegue) (Despliegue, error) {
	res := r.db.WithContext(ctx).Model(&Despliegue{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"unidad_solicitante":   d.UnidadSolicitante,
			"solicitante":          d.Solicitante,
			"cod_tipo_respaldo":    d.CodTipoRespaldo,
			"referencia_respaldo":  d.ReferenciaRespaldo,
			"estado":               d.Estado,
			"fecha_modificacion":   d.FechaModificacion,
			"usuario_modificacion": d.UsuarioModificacion,
		})
	if res.Error != nil {
		return Despliegue{}, transaccion.EnvolverFallaAlmacen("actualizar despliegue", res.Error)
	}
	if res.RowsAffected == 0 {
		return Despliegue{}, ErrNoEncontrado
	}
	return d, nil
}

func (r *implRepository) CambiarEstadoRegistro(ctx context.Context, id uint, nuevo string, actor uint) (Despliegue, error) {
	d, err := r.Leer(ctx, id)
	if err != nil {
		return Despliegue{}, err
	}
	if d.Estado == nuevo {
		return d, nil
	}
	d.Estado = nuevo
	d.MarcarModificacion(actor)
	return r.Actualizar(ctx, d)
}

func (r *implRepository) Transicionar(ctx context.Context, id uint, nuevo string, actor uint) (Despliegue, DespliegueBitacora, error) {
	flujo := estado.FlujoDespliegue()
	var d Despliegue
	var fila DespliegueBitacora

	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.First(&d, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		if err != nil {
			return err
		}

		tr, err := flujo.Transicionar(d.EstadoDespliegue, nuevo)
		if err != nil {
			return err
		}

		d.MarcarModificacion(actor)
		res := tx.Model(&Despliegue{}).
			Where("id = ? AND estado_despliegue = ?", id, tr.Anterior).
			Updates(map[string]interface{}{
				"estado_despliegue":    tr.Actual,
				"fecha_modificacion":   d.FechaModificacion,
				"usuario_modificacion": d.UsuarioModificacion,
			})
		if res.Error != nil {
			return transaccion.EnvolverFallaAlmacen("transicionar despliegue", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflictoTransicion
		}
		d.EstadoDespliegue = tr.Actual

		fila, err = bitacora.RegistrarDespliegue(ctx, tx, id, tr, actor)
		return err
	})
	if err != nil {
		return Despliegue{}, DespliegueBitacora{}, err
	}
	return d, fila, nil
}

func (r *implRepository) ListarBitacora(ctx context.Context, idDespliegue uint) ([]DespliegueBitacora, error) {
	if _, err := r.Leer(ctx, idDespliegue); err != nil {
		return nil, err
	}
	return bitacora.ListarDespliegue(ctx, r.db, idDespliegue)
}

package sistema

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/transaccion"
	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	operaciones "github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/model"
)

type Repository interface {
	CrearSistema(ctx context.Context, s Sistema) (Sistema, error)
	LeerSistema(ctx context.Context, id uint) (Sistema, error)
	ListarSistemas(ctx context.Context, page, size int) ([]Sistema, error)
	ActualizarSistema(ctx context.Context, s Sistema) (Sistema, error)
	EliminarSistema(ctx context.Context, id uint) error
	ContarDependientesActivosSistema(ctx context.Context, id uint) (int64, error)

	CrearEntidad(ctx context.Context, e Entidad) (Entidad, error)
	LeerEntidad(ctx context.Context, id uint) (Entidad, error)
	ListarEntidades(ctx context.Context, idSistema uint, page, size int) ([]Entidad, error)
	ActualizarEntidad(ctx context.Context, e Entidad) (Entidad, error)
	EliminarEntidad(ctx context.Context, id uint) error

	CrearComponente(ctx context.Context, c Componente) (Componente, error)
	LeerComponente(ctx context.Context, id uint) (Componente, error)
	ListarComponentes(ctx context.Context, idSistema uint, page, size int) ([]Componente, error)
	ActualizarComponente(ctx context.Context, c Componente) (Componente, error)
	EliminarComponente(ctx context.Context, id uint) error
	ContarDespliguesActivosComponente(ctx context.Context, id uint) (int64, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

// sistemaActivo verifica dentro de la transacción que el sistema padre
// exista y esté ACTIVO antes de colgar una entidad o componente.
func sistemaActivo(tx *gorm.DB, id uint) error {
	var total int64
	err := tx.Model(&Sistema{}).
		Where("id = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&total).Error
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrSistemaInactivo
	}
	return nil
}

func (r *implRepository) CrearSistema(ctx context.Context, s Sistema) (Sistema, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return Sistema{}, mapErrorPg(err)
	}
	return s, nil
}

func (r *implRepository) LeerSistema(ctx context.Context, id uint) (Sistema, error) {
	var s Sistema
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Sistema{}, ErrNoEncontrado
	}
	if err != nil {
		return Sistema{}, err
	}
	return s, nil
}

func (r *implRepository) ListarSistemas(ctx context.Context, page, size int) ([]Sistema, error) {
	var sistemas []Sistema
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&sistemas).Error
	return sistemas, err
}

func (r *implRepository) ActualizarSistema(ctx context.Context, s Sistema) (Sistema, error) {
	res := r.db.WithContext(ctx).Model(&Sistema{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"nombre":               s.Nombre,
			"descripcion":          s.Descripcion,
			"estado":               s.Estado,
			"fecha_modificacion":   s.FechaModificacion,
			"usuario_modificacion": s.UsuarioModificacion,
		})
	if res.Error != nil {
		return Sistema{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Sistema{}, ErrNoEncontrado
	}
	return s, nil
}

// ContarDependientesActivosSistema cuenta entidades, componentes y
// asignaciones de rol ACTIVOS colgados del sistema; si hay alguno la
// desactivación se rechaza.
func (r *implRepository) ContarDependientesActivosSistema(ctx context.Context, id uint) (int64, error) {
	var entidades, componentes, roles int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&Entidad{}).
		Where("id_sistema = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&entidades).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&Componente{}).
		Where("id_sistema = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&componentes).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&inventario.UsuarioRol{}).
		Where("id_sistema = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&roles).Error; err != nil {
		return 0, err
	}
	return entidades + componentes + roles, nil
}

func (r *implRepository) EliminarSistema(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&Entidad{}).Where("id_sistema = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		if err := tx.Model(&Componente{}).Where("id_sistema = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		if err := tx.Model(&inventario.UsuarioRol{}).Where("id_sistema = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&Sistema{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func (r *implRepository) CrearEntidad(ctx context.Context, e Entidad) (Entidad, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := sistemaActivo(tx, e.IDSistema); err != nil {
			return err
		}
		return tx.Create(&e).Error
	})
	if err != nil {
		return Entidad{}, mapErrorPg(err)
	}
	return e, nil
}

func (r *implRepository) LeerEntidad(ctx context.Context, id uint) (Entidad, error) {
	var e Entidad
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entidad{}, ErrNoEncontrado
	}
	if err != nil {
		return Entidad{}, err
	}
	return e, nil
}

func (r *implRepository) ListarEntidades(ctx context.Context, idSistema uint, page, size int) ([]Entidad, error) {
	var entidades []Entidad
	q := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size)
	if idSistema != 0 {
		q = q.Where("id_sistema = ?", idSistema)
	}
	err := q.Find(&entidades).Error
	return entidades, err
}

func (r *implRepository) ActualizarEntidad(ctx context.Context, e Entidad) (Entidad, error) {
	res := r.db.WithContext(ctx).Model(&Entidad{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"nombre":               e.Nombre,
			"sigla":                e.Sigla,
			"estado":               e.Estado,
			"fecha_modificacion":   e.FechaModificacion,
			"usuario_modificacion": e.UsuarioModificacion,
		})
	if res.Error != nil {
		return Entidad{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Entidad{}, ErrNoEncontrado
	}
	return e, nil
}

func (r *implRepository) EliminarEntidad(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Entidad{}, "id = ?", id)
	if res.Error != nil {
		return mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func (r *implRepository) CrearComponente(ctx context.Context, c Componente) (Componente, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := sistemaActivo(tx, c.IDSistema); err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
	if err != nil {
		return Componente{}, mapErrorPg(err)
	}
	return c, nil
}

func (r *implRepository) LeerComponente(ctx context.Context, id uint) (Componente, error) {
	var c Componente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Componente{}, ErrNoEncontrado
	}
	if err != nil {
		return Componente{}, err
	}
	return c, nil
}

func (r *implRepository) ListarComponentes(ctx context.Context, idSistema uint, page, size int) ([]Componente, error) {
	var componentes []Componente
	q := r.db.WithContext(ctx).Order("id ASC").Limit(size).Offset((page - 1) * size)
	if idSistema != 0 {
		q = q.Where("id_sistema = ?", idSistema)
	}
	err := q.Find(&componentes).Error
	return componentes, err
}

func (r *implRepository) ActualizarComponente(ctx context.Context, c Componente) (Componente, error) {
	res := r.db.WithContext(ctx).Model(&Componente{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"nombre":               c.Nombre,
			"tecnologia":           c.Tecnologia,
			"descripcion":          c.Descripcion,
			"estado":               c.Estado,
			"fecha_modificacion":   c.FechaModificacion,
			"usuario_modificacion": c.UsuarioModificacion,
		})
	if res.Error != nil {
		return Componente{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Componente{}, ErrNoEncontrado
	}
	return c, nil
}

func (r *implRepository) ContarDespliguesActivosComponente(ctx context.Context, id uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&operaciones.Despliegue{}).
		Where("id_componente = ? AND estado = ?", id, inventario.EstadoActivo).
		Count(&total).Error
	return total, err
}

func (r *implRepository) EliminarComponente(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&operaciones.Despliegue{}).Where("id_componente = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&Componente{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

func mapErrorPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrCodigoDuplicado
		case "23503":
			return ErrIntegridadReferencial
		}
	}
	return err
}

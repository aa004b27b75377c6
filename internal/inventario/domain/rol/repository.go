package rol

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Repository define el acceso a datos para roles.
type Repository interface {
	Crear(ctx context.Context, r Rol) (Rol, error)
	Leer(ctx context.Context, id uint) (Rol, error)
	LeerPorNombre(ctx context.Context, nombre string) (Rol, error)
	Listar(ctx context.Context, page, size int) ([]Rol, error)
	Actualizar(ctx context.Context, r Rol) (Rol, error)
	Eliminar(ctx context.Context, id uint) error
	ContarAsignacionesActivas(ctx context.Context, idRol uint) (int64, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

func (r *implRepository) Crear(ctx context.Context, rol Rol) (Rol, error) {
	if err := r.db.WithContext(ctx).Create(&rol).Error; err != nil {
		return Rol{}, mapErrorPg(err)
	}
	return rol, nil
}

func (r *implRepository) Leer(ctx context.Context, id uint) (Rol, error) {
	var rol Rol
	err := r.db.WithContext(ctx).First(&rol, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Rol{}, ErrNoEncontrado
	}
	if err != nil {
		return Rol{}, err
	}
	return rol, nil
}

func (r *implRepository) LeerPorNombre(ctx context.Context, nombre string) (Rol, error) {
	var rol Rol
	err := r.db.WithContext(ctx).First(&rol, "nombre = ?", nombre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Rol{}, ErrNoEncontrado
	}
	if err != nil {
		return Rol{}, err
	}
	return rol, nil
}

func (r *implRepository) Listar(ctx context.Context, page, size int) ([]Rol, error) {
	var roles []Rol
	offset := (page - 1) * size
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(size).
		Offset(offset).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *implRepository) Actualizar(ctx context.Context, rol Rol) (Rol, error) {
	res := r.db.WithContext(ctx).Model(&Rol{}).
		Where("id = ?", rol.ID).
		Updates(map[string]interface{}{
			"nombre":               rol.Nombre,
			"descripcion":          rol.Descripcion,
			"estado":               rol.Estado,
			"fecha_modificacion":   rol.FechaModificacion,
			"usuario_modificacion": rol.UsuarioModificacion,
		})
	if res.Error != nil {
		return Rol{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Rol{}, ErrNoEncontrado
	}
	return rol, nil
}

func (r *implRepository) ContarAsignacionesActivas(ctx context.Context, idRol uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&inventario.UsuarioRol{}).
		Where("id_rol = ? AND estado = ?", idRol, inventario.EstadoActivo).
		Count(&total).Error
	return total, err
}

func (r *implRepository) Eliminar(ctx context.Context, id uint) error {
	// Un rol con asignaciones (en cualquier estado) no puede borrarse físicamente.
	var refs int64
	if err := r.db.WithContext(ctx).Model(&inventario.UsuarioRol{}).
		Where("id_rol = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrIntegridadReferencial
	}
	res := r.db.WithContext(ctx).Delete(&Rol{}, "id = ?", id)
	if res.Error != nil {
		return mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

// mapErrorPg traduce códigos SQLSTATE de Postgres a errores del dominio.
func mapErrorPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrNombreDuplicado
		case "23503":
			return ErrIntegridadReferencial
		}
	}
	return err
}

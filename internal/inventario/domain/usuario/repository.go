package usuario

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/transaccion"
	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

type Repository interface {
	Crear(ctx context.Context, u Usuario) (Usuario, error)
	Leer(ctx context.Context, id uint) (Usuario, error)
	LeerPorNombreUsuario(ctx context.Context, nombreUsuario string) (Usuario, error)
	LeerPorCorreo(ctx context.Context, correo string) (Usuario, error)
	Listar(ctx context.Context, page, size int) ([]Usuario, error)
	Actualizar(ctx context.Context, u Usuario) (Usuario, error)
	ActualizarContrasena(ctx context.Context, id uint, hash string) error
	Eliminar(ctx context.Context, id uint) error
	ContarRolesActivos(ctx context.Context, idUsuario uint) (int64, error)

	// AsignarRol implementa la regla de tupla única activa: si la tupla
	// existe ACTIVA devuelve ErrRolActivoDuplicado; si existe INACTIVA
	// reactiva la misma fila conservando su id; si no existe crea una nueva.
	AsignarRol(ctx context.Context, a UsuarioRol) (UsuarioRol, error)
	RevocarRol(ctx context.Context, idAsignacion uint, actor uint) (UsuarioRol, error)
	ListarAsignaciones(ctx context.Context, idUsuario uint) ([]UsuarioRol, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

func (r *implRepository) Crear(ctx context.Context, u Usuario) (Usuario, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return Usuario{}, mapErrorPg(err)
	}
	return u, nil
}

func (r *implRepository) Leer(ctx context.Context, id uint) (Usuario, error) {
	var u Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Usuario{}, ErrNoEncontrado
	}
	if err != nil {
		return Usuario{}, err
	}
	return u, nil
}

func (r *implRepository) LeerPorNombreUsuario(ctx context.Context, nombreUsuario string) (Usuario, error) {
	var u Usuario
	err := r.db.WithContext(ctx).First(&u, "nombre_usuario = ?", nombreUsuario).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Usuario{}, ErrNoEncontrado
	}
	if err != nil {
		return Usuario{}, err
	}
	return u, nil
}

func (r *implRepository) LeerPorCorreo(ctx context.Context, correo string) (Usuario, error) {
	var u Usuario
	err := r.db.WithContext(ctx).First(&u, "correo = ?", correo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Usuario{}, ErrNoEncontrado
	}
	if err != nil {
		return Usuario{}, err
	}
	return u, nil
}

func (r *implRepository) Listar(ctx context.Context, page, size int) ([]Usuario, error) {
	var usuarios []Usuario
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&usuarios).Error
	return usuarios, err
}

func (r *implRepository) Actualizar(ctx context.Context, u Usuario) (Usuario, error) {
	res := r.db.WithContext(ctx).Model(&Usuario{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"nombre":               u.Nombre,
			"correo":               u.Correo,
			"estado":               u.Estado,
			"fecha_modificacion":   u.FechaModificacion,
			"usuario_modificacion": u.UsuarioModificacion,
		})
	if res.Error != nil {
		return Usuario{}, mapErrorPg(res.Error)
	}
	if res.RowsAffected == 0 {
		return Usuario{}, ErrNoEncontrado
	}
	return u, nil
}

func (r *implRepository) ActualizarContrasena(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&Usuario{}).
		Where("id = ?", id).
		Update("contrasena_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrado
	}
	return nil
}

func (r *implRepository) ContarRolesActivos(ctx context.Context, idUsuario uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&UsuarioRol{}).
		Where("id_usuario = ? AND estado = ?", idUsuario, inventario.EstadoActivo).
		Count(&total).Error
	return total, err
}

func (r *implRepository) Eliminar(ctx context.Context, id uint) error {
	return transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&UsuarioRol{}).Where("id_usuario = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrIntegridadReferencial
		}
		res := tx.Delete(&Usuario{}, "id = ?", id)
		if res.Error != nil {
			return mapErrorPg(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoEncontrado
		}
		return nil
	})
}

// referenciaActiva valida que la fila exista con estado ACTIVO.
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

func (r *implRepository) AsignarRol(ctx context.Context, a UsuarioRol) (UsuarioRol, error) {
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		if err := referenciaActiva(tx, &Usuario{}, a.IDUsuario); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &inventario.Rol{}, a.IDRol); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &inventario.Maquina{}, a.IDMaquina); err != nil {
			return err
		}
		if err := referenciaActiva(tx, &inventario.Sistema{}, a.IDSistema); err != nil {
			return err
		}

		var existente UsuarioRol
		err := tx.Where(
			"id_usuario = ? AND id_rol = ? AND id_maquina = ? AND id_sistema = ?",
			a.IDUsuario, a.IDRol, a.IDMaquina, a.IDSistema,
		).Order("id DESC").First(&existente).Error
		switch {
		case err == nil && existente.Estado == inventario.EstadoActivo:
			return ErrRolActivoDuplicado
		case err == nil:
			// Reactiva la fila inactiva en lugar de crear un duplicado.
			existente.Estado = inventario.EstadoActivo
			existente.MarcarModificacion(a.UsuarioCreacion)
			if err := tx.Model(&UsuarioRol{}).Where("id = ?", existente.ID).
				Updates(map[string]interface{}{
					"estado":               existente.Estado,
					"fecha_modificacion":   existente.FechaModificacion,
					"usuario_modificacion": existente.UsuarioModificacion,
				}).Error; err != nil {
				return err
			}
			a = existente
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&a).Error
		default:
			return err
		}
	})
	if err != nil {
		return UsuarioRol{}, mapErrorPg(err)
	}
	return a, nil
}

func (r *implRepository) RevocarRol(ctx context.Context, idAsignacion uint, actor uint) (UsuarioRol, error) {
	var a UsuarioRol
	err := transaccion.Ejecutar(ctx, r.db, func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", idAsignacion).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAsignacionNoExiste
		}
		if err != nil {
			return err
		}
		if a.Estado == inventario.EstadoInactivo {
			return nil
		}
		a.Estado = inventario.EstadoInactivo
		a.MarcarModificacion(actor)
		return tx.Model(&UsuarioRol{}).Where("id = ?", a.ID).
			Updates(map[string]interface{}{
				"estado":               a.Estado,
				"fecha_modificacion":   a.FechaModificacion,
				"usuario_modificacion": a.UsuarioModificacion,
			}).Error
	})
	if err != nil {
		return UsuarioRol{}, err
	}
	return a, nil
}

func (r *implRepository) ListarAsignaciones(ctx context.Context, idUsuario uint) ([]UsuarioRol, error) {
	var asignaciones []UsuarioRol
	err := r.db.WithContext(ctx).
		Where("id_usuario = ?", idUsuario).
		Order("id ASC").
		Find(&asignaciones).Error
	return asignaciones, err
}

func mapErrorPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicado
		case "23503":
			return ErrReferenciaInactiva
		}
	}
	return err
}

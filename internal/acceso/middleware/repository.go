package middleware

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	model "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

var ErrTokenNoEncontrado = errors.New("token de acceso no encontrado")

type Repository interface {
	GetLogin(ctx context.Context, token string) (Login, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

type tokenRow struct {
	IDUsuario  uint
	Expiracion time.Time
	Revocado   bool
}

// GetLogin resuelve un token de acceso vigente hacia el usuario y sus roles.
func (r *implRepository) GetLogin(ctx context.Context, token string) (Login, error) {
	var row tokenRow
	err := r.db.WithContext(ctx).
		Table("access_tokens").
		Select("id_usuario, expiracion, revocado").
		Where("token = ?", token).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Login{}, ErrTokenNoEncontrado
		}
		return Login{}, err
	}

	if row.Revocado || time.Now().UTC().After(row.Expiracion) {
		return Login{}, ErrTokenNoEncontrado
	}

	var usuario model.Usuario
	err = r.db.WithContext(ctx).
		Where("id = ? AND estado = ?", row.IDUsuario, model.EstadoActivo).
		Take(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Login{}, ErrTokenNoEncontrado
		}
		return Login{}, err
	}

	var roles []string
	err = r.db.WithContext(ctx).
		Table("usuarios_roles").
		Select("DISTINCT roles.nombre").
		Joins("JOIN roles ON roles.id = usuarios_roles.id_rol").
		Where("usuarios_roles.id_usuario = ? AND usuarios_roles.estado = ?", usuario.ID, model.EstadoActivo).
		Scan(&roles).Error
	if err != nil {
		return Login{}, err
	}

	return Login{Usuario: usuario, Roles: roles}, nil
}

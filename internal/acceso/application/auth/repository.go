package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	CrearAccessToken(ctx context.Context, t AccessToken) (AccessToken, error)
	RevocarAccessToken(ctx context.Context, token string) error
	RevocarTokensDeUsuario(ctx context.Context, idUsuario uint) error
	LeerAccessToken(ctx context.Context, token string) (AccessToken, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

func (r *implRepository) CrearAccessToken(ctx context.Context, t AccessToken) (AccessToken, error) {
	err := r.db.WithContext(ctx).Create(&t).Error
	if err == nil {
		return t, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
		return AccessToken{}, ErrTokenDuplicado
	}
	return AccessToken{}, err
}

func (r *implRepository) RevocarAccessToken(ctx context.Context, token string) error {
	res := r.db.WithContext(ctx).
		Model(&AccessToken{}).
		Where("token = ? AND revocado = ?", token, false).
		Update("revocado", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTokenNoExiste
	}
	return nil
}

// RevocarTokensDeUsuario invalida toda sesión vigente del usuario; se usa
// en el login para garantizar sesión única.
func (r *implRepository) RevocarTokensDeUsuario(ctx context.Context, idUsuario uint) error {
	return r.db.WithContext(ctx).
		Model(&AccessToken{}).
		Where("id_usuario = ? AND revocado = ? AND expiracion > ?", idUsuario, false, time.Now().UTC()).
		Update("revocado", true).Error
}

func (r *implRepository) LeerAccessToken(ctx context.Context, token string) (AccessToken, error) {
	var t AccessToken
	err := r.db.WithContext(ctx).First(&t, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AccessToken{}, ErrTokenNoExiste
	}
	if err != nil {
		return AccessToken{}, err
	}
	return t, nil
}

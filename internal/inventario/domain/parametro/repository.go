package parametro

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

type Repository interface {
	Crear(ctx context.Context, p Parametro) (Parametro, error)
	Leer(ctx context.Context, id uint) (Parametro, error)
	ListarPorGrupo(ctx context.Context, grupo string) ([]Parametro, error)
	Actualizar(ctx context.Context, p Parametro) (Parametro, error)
	// ExisteCodigoActivo responde si el par (grupo, codigo) está en el
	// catálogo con estado ACTIVO.
	ExisteCodigoActivo(ctx context.Context, grupo, codigo string) (bool, error)
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

func (r *implRepository) Crear(ctx context.Context, p Parametro) (Parametro, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Parametro{}, ErrDuplicado
		}
		return Parametro{}, err
	}
	return p, nil
}

func (r *implRepository) Leer(ctx context.Context, id uint) (Parametro, error) {
	var p Parametro
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Parametro{}, ErrNoEncontrado
	}
	if err != nil {
		return Parametro{}, err
	}
	return p, nil
}

func (r *implRepository) ListarPorGrupo(ctx context.Context, grupo string) ([]Parametro, error) {
	var parametros []Parametro
	q := r.db.WithContext(ctx).Order("grupo ASC, codigo ASC")
	if grupo != "" {
		q = q.Where("grupo = ?", grupo)
	}
	if err := q.Find(&parametros).Error; err != nil {
		return nil, err
	}
	return parametros, nil
}

func (r *implRepository) Actualizar(ctx context.Context, p Parametro) (Parametro, error) {
	res := r.db.WithContext(ctx).Model(&Parametro{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"nombre":               p.Nombre,
			"descripcion":          p.Descripcion,
			"estado":               p.Estado,
			"fecha_modificacion":   p.FechaModificacion,
			"usuario_modificacion": p.UsuarioModificacion,
		})
	if res.Error != nil {
		return Parametro{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Parametro{}, ErrNoEncontrado
	}
	return p, nil
}

func (r *implRepository) ExisteCodigoActivo(ctx context.Context, grupo, codigo string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Parametro{}).
		Where("grupo = ? AND codigo = ? AND estado = ?", grupo, codigo, inventario.EstadoActivo).
		Count(&total).Error
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

package auth

import (
	"context"
	"sync"

	"gorm.io/gorm"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/usuario"
)

type UseAuth struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseAuth
	once     sync.Once
)

func New(db *gorm.DB) *UseAuth {
	once.Do(func() {
		repository := NewRepository(db)
		roles := func(ctx context.Context, idUsuario uint) ([]string, error) {
			var nombres []string
			err := db.WithContext(ctx).
				Table("usuarios_roles").
				Select("DISTINCT roles.nombre").
				Joins("JOIN roles ON roles.id = usuarios_roles.id_rol").
				Where("usuarios_roles.id_usuario = ? AND usuarios_roles.estado = ?", idUsuario, inventario.EstadoActivo).
				Scan(&nombres).Error
			return nombres, err
		}
		service := NewService(repository, usuario.New(db).Service, roles)
		controller := NewController(service)
		instance = &UseAuth{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseAuth {
	if instance == nil {
		panic("auth: singleton no inicializado, llame a New primero")
	}
	return instance
}

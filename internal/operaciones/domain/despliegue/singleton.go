package despliegue

import (
	"sync"

	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/parametro"
)

type UseDespliegue struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseDespliegue
	once     sync.Once
)

func New(db *gorm.DB) *UseDespliegue {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository, parametro.New(db).Service)
		controller := NewController(service)
		instance = &UseDespliegue{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseDespliegue {
	if instance == nil {
		panic("despliegue: singleton no inicializado, llame a New primero")
	}
	return instance
}

package evento

import (
	"sync"

	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/parametro"
)

type UseEvento struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseEvento
	once     sync.Once
)

func New(db *gorm.DB) *UseEvento {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository, parametro.New(db).Service)
		controller := NewController(service)
		instance = &UseEvento{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseEvento {
	if instance == nil {
		panic("evento: singleton no inicializado, llame a New primero")
	}
	return instance
}

package infraestructura

import (
	"sync"

	"gorm.io/gorm"
)

type UseInfraestructura struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseInfraestructura
	once     sync.Once
)

func New(db *gorm.DB) *UseInfraestructura {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository)
		controller := NewController(service)
		instance = &UseInfraestructura{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseInfraestructura {
	if instance == nil {
		panic("infraestructura: singleton no inicializado, llame a New primero")
	}
	return instance
}

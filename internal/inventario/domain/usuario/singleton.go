package usuario

import (
	"sync"

	"gorm.io/gorm"
)

type UseUsuario struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseUsuario
	once     sync.Once
)

func New(db *gorm.DB) *UseUsuario {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository)
		controller := NewController(service)
		instance = &UseUsuario{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseUsuario {
	if instance == nil {
		panic("usuario: singleton no inicializado, llame a New primero")
	}
	return instance
}

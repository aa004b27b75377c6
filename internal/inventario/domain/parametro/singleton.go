package parametro

import (
	"sync"

	"gorm.io/gorm"
)

type UseParametro struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseParametro
	once     sync.Once
)

func New(db *gorm.DB) *UseParametro {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository)
		controller := NewController(service)
		instance = &UseParametro{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseParametro {
	if instance == nil {
		panic("parametro: singleton no inicializado, llame a New primero")
	}
	return instance
}

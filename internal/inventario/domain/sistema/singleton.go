package sistema

import (
	"sync"

	"gorm.io/gorm"
)

type UseSistema struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseSistema
	once     sync.Once
)

func New(db *gorm.DB) *UseSistema {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository)
		controller := NewController(service)
		instance = &UseSistema{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

func MustUse() *UseSistema {
	if instance == nil {
		panic("sistema: singleton no inicializado, llame a New primero")
	}
	return instance
}

package rol

import (
	"sync"

	"gorm.io/gorm"
)

type UseRol struct {
	Repository Repository
	Service    Service
	Controller Controller
}

var (
	instance *UseRol
	once     sync.Once
)

// New inicializa el singleton del dominio rol.
func New(db *gorm.DB) *UseRol {
	once.Do(func() {
		repository := NewRepository(db)
		service := NewService(repository)
		controller := NewController(service)
		instance = &UseRol{
			Repository: repository,
			Service:    service,
			Controller: controller,
		}
	})
	return instance
}

// MustUse devuelve el singleton ya inicializado; entra en pánico si no lo está.
func MustUse() *UseRol {
	if instance == nil {
		panic("rol: singleton no inicializado, llame a New primero")
	}
	return instance
}

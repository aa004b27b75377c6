package middleware

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

var (
	middlewareInstance Middleware
	repositoryInstance Repository
	once               sync.Once
	initErr            error
	ErrNotInitialized  = errors.New("middleware de acceso no inicializado")
)

type UseMiddleware struct {
	Repository Repository
	Middleware Middleware
}

// New inicializa el singleton del middleware con sus dependencias.
func New(db *gorm.DB) (Middleware, error) {
	once.Do(func() {
		if db == nil {
			initErr = errors.New("la conexión a la base de datos no puede ser nil")
			return
		}

		repositoryInstance = NewRepository(db)
		middlewareInstance = NewMiddleware(repositoryInstance)
	})

	return middlewareInstance, initErr
}

// MustUse devuelve las capas del middleware; entra en pánico si no fue
// inicializado.
func MustUse() *UseMiddleware {
	if middlewareInstance == nil || repositoryInstance == nil {
		panic(ErrNotInitialized)
	}
	return &UseMiddleware{
		Repository: repositoryInstance,
		Middleware: middlewareInstance,
	}
}

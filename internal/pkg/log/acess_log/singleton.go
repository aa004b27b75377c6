package acess_log

import (
	"context"
	"errors"
	"log"
	"sync"

	"gorm.io/gorm"
)

var (
	instance *Service
	once     sync.Once
	initErr  error

	ErrLogNotInitialized = errors.New("access logger no inicializado")
)

// New inicializa el logger de accesos una sola vez.
func New(db *gorm.DB) (*Service, error) {
	once.Do(func() {
		if db == nil {
			initErr = errors.New("se requiere base de datos para el access log")
			return
		}
		instance = NewService(NewRepository(db))
	})

	return instance, initErr
}

// MustUse devuelve la instancia (puede ser nil).
func MustUse() *Service {
	return instance
}

// LogAsync registra el acceso sin bloquear la respuesta.
func LogAsync(ctx context.Context, entry AccessLog) {
	if instance == nil {
		return
	}

	ctxDetached := context.WithoutCancel(ctx)
	go func() {
		if err := instance.Log(ctxDetached, entry); err != nil {
			log.Printf("Error en access log: %v", err)
		}
	}()
}

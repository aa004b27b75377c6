package auditoria_log

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
	mu       sync.Mutex
	initErr  error

	ErrLogNotInitialized = errors.New("audit logger no inicializado")
)

type Config struct {
	Enabled bool
}

// New inicializa el logger de auditoría una sola vez (si Enabled=true).
func New(db *gorm.DB, cfg Config) (*Service, error) {
	once.Do(func() {
		if !cfg.Enabled {
			initErr = errors.New("audit logger deshabilitado en la configuración")
			return
		}

		if db == nil {
			initErr = errors.New("se requiere base de datos para el audit log")
			return
		}

		repo := NewRepository(db)
		instance = NewService(repo)
	})

	return instance, initErr
}

// MustUse devuelve la instancia (puede ser nil).
func MustUse() *Service {
	return instance
}

// Use garantiza que siempre exista un logger activo; si no existe lo crea.
func Use(db *gorm.DB) *Service {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	if db == nil {
		panic("Use llamado sin DB: se requiere base de datos para inicializar el AuditLog")
	}

	repo := NewRepository(db)
	instance = NewService(repo)

	return instance
}

// LogAsync registra la auditoría en una goroutine separada. El contexto se
// desacopla para que la cancelación de la petición no pierda la fila.
func LogAsync(ctx context.Context, entry AuditLog) {
	if instance == nil {
		return
	}

	ctxDetached := context.WithoutCancel(ctx)
	go func() {
		if err := instance.Log(ctxDetached, entry); err != nil {
			log.Printf("Error en audit log: %v", err)
		}
	}()
}

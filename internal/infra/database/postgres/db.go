package postgres

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/viper"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Modos SSL permitidos para PostgreSQL
const (
	SSLDisable    = "disable"
	SSLRequire    = "require"
	SSLVerifyFull = "verify-full"
	SSLVerifyCA   = "verify-ca"
)

var (
	db   *gorm.DB
	once sync.Once
)

// InitPostgres inicializa la conexión GORM con PostgreSQL. Usa sync.Once
// para garantizar que la conexión se cree una sola vez.
func InitPostgres() *gorm.DB {
	once.Do(func() {
		dsn := buildDSN()
		var err error

		db, err = gorm.Open(gormPostgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("[DATABASE] error al abrir conexión GORM: %v", err)
		}

		var sqlDB *sql.DB
		sqlDB, err = db.DB()
		if err != nil {
			log.Fatalf("[DATABASE] error al obtener *sql.DB de GORM: %v", err)
		}

		if err := sqlDB.Ping(); err != nil {
			log.Fatalf("[DATABASE] error al probar la conexión con la base de datos: %v", err)
		}

		log.Println("[DATABASE] Conexión GORM con PostgreSQL establecida con éxito.")
	})

	return db
}

// GetDB devuelve la instancia actual de la conexión GORM.
func GetDB() *gorm.DB {
	if db == nil {
		log.Fatal("[DATABASE] la conexión GORM no fue inicializada. Llame a InitPostgres() primero.")
	}
	return db
}

// Close cierra la conexión con la base de datos y permite reinicializarla.
func Close() {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[DATABASE] error al obtener *sql.DB para el cierre: %v", err)
	} else {
		if err := sqlDB.Close(); err != nil {
			log.Printf("[DATABASE] error al cerrar la conexión con la base: %v", err)
		}
	}

	db = nil
	once = sync.Once{}
}

// buildDSN arma la cadena de conexión de PostgreSQL desde la configuración.
func buildDSN() string {
	host := viper.GetString("databases.postgres.host")
	port := viper.GetString("databases.postgres.port")
	user := viper.GetString("databases.postgres.user")
	pass := viper.GetString("databases.postgres.pwd")
	name := viper.GetString("databases.postgres.db_name")
	if name == "" {
		name = "sistemainfra"
	}
	ssl := viper.GetString("databases.postgres.ssl_mode")
	if !isValidSSLMode(ssl) {
		log.Printf("[DATABASE] Modo SSL '%s' inválido. Se usa el valor por defecto '%s'.", ssl, SSLDisable)
		ssl = SSLDisable
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, ssl,
	)
}

// isValidSSLMode verifica que el modo SSL configurado sea válido.
func isValidSSLMode(mode string) bool {
	switch mode {
	case SSLDisable, SSLRequire, SSLVerifyFull, SSLVerifyCA:
		return true
	default:
		return false
	}
}

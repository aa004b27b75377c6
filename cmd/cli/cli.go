package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/cmd/bootstrap"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/admin"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/migrations"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/postgres"
)

type options struct {
	Start             bool
	Stop              bool
	Seed              bool
	Update            bool
	DBCheck           bool
	DBDelete          bool
	DBBackup          bool
	BackupDestination string
}

func Execute() error {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		return err
	}

	if !opts.anyOperation() {
		log.Println("Ninguna operación indicada. Use --help para listar las opciones disponibles.")
		return nil
	}

	if opts.Stop {
		if err := stopServer(); err != nil {
			return fmt.Errorf("falla al detener el servidor: %w", err)
		}
		log.Println("Servidor detenido con éxito.")
		return nil
	}

	bootstrap.Environment()

	var (
		db         *gorm.DB
		manager    *migrations.Manager
		needDB     = opts.requiresDatabase()
		operations bool
	)

	if needDB {
		db = postgres.InitPostgres()
		defer postgres.Close()
	}

	if opts.Seed {
		if manager == nil {
			manager = migrations.NewManager(db)
		}
		if err := manager.ApplySeed(); err != nil {
			return fmt.Errorf("falla al aplicar las migraciones de seed: %w", err)
		}
		log.Println("Migraciones de seed aplicadas con éxito.")
		operations = true
	}

	if opts.Update {
		if manager == nil {
			manager = migrations.NewManager(db)
		}
		if err := manager.ApplyUpdate(); err != nil {
			return fmt.Errorf("falla al aplicar las migraciones de actualización: %w", err)
		}
		log.Println("Migraciones de actualización aplicadas con éxito.")
		operations = true
	}

	if opts.DBCheck {
		if db == nil {
			return fmt.Errorf("conexión a la base de datos no inicializada")
		}
		status, err := admin.Check(db)
		if err != nil {
			return fmt.Errorf("falla al verificar la base de datos: %w", err)
		}
		log.Printf("Base de datos activa. Tablas encontradas (%d): %v", len(status.Tables), status.Tables)
		operations = true
	}

	if opts.DBDelete {
		if db == nil {
			return fmt.Errorf("conexión a la base de datos no inicializada")
		}
		if err := admin.DeleteAll(db); err != nil {
			return fmt.Errorf("falla al eliminar las tablas de la base: %w", err)
		}
		log.Println("Todas las tablas fueron eliminadas con éxito.")
		operations = true
	}

	if opts.DBBackup {
		if opts.BackupDestination == "" {
			return fmt.Errorf("para ejecutar el backup indique el destino con --local=<ruta>")
		}

		dest := opts.BackupDestination
		if !filepath.IsAbs(dest) {
			if abs, err := filepath.Abs(dest); err == nil {
				dest = abs
			}
		}

		if err := admin.Backup(admin.BackupOptions{Destination: dest}); err != nil {
			return fmt.Errorf("falla al ejecutar el backup: %w", err)
		}
		log.Printf("Backup generado en %s", dest)
		operations = true
	}

	if opts.Start {
		if err := startServer(); err != nil {
			return fmt.Errorf("falla al iniciar el servidor: %w", err)
		}
		operations = true
	}

	if !operations {
		log.Println("Ninguna operación ejecutada. Use --help para listar las opciones disponibles.")
	}

	return nil
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("sistema-infra", pflag.ContinueOnError)
	fs.BoolVar(&opts.Start, "start", false, "Inicia el servidor HTTP")
	fs.BoolVar(&opts.Stop, "stop", false, "Detiene el servidor HTTP")
	fs.BoolVar(&opts.Seed, "migration-seed", false, "Aplica las migraciones de seed")
	fs.BoolVar(&opts.Update, "migration-update", false, "Aplica las migraciones de actualización")
	fs.BoolVar(&opts.DBCheck, "db-check", false, "Verifica el estado de la base de datos")
	fs.BoolVar(&opts.DBDelete, "db-delete", false, "Elimina todas las tablas de la base de datos")
	fs.BoolVar(&opts.DBBackup, "db-backup", false, "Realiza un backup de la base de datos")
	fs.StringVar(&opts.BackupDestination, "local", "", "Directorio de destino para el backup")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	return opts, nil
}

func (o options) anyOperation() bool {
	return o.Start || o.Stop || o.Seed || o.Update || o.DBCheck || o.DBDelete || o.DBBackup
}

func (o options) requiresDatabase() bool {
	return o.Seed || o.Update || o.DBCheck || o.DBDelete
}

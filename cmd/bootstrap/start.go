package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
	"golang.ngrok.com/ngrok/v2"
	"gorm.io/gorm"

	"github.com/Americo7/SistemaInfra-2-sub002/cmd/server"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/application/auth"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/middleware"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/database/postgres"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/jwt"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/infraestructura"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/parametro"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/rol"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/sistema"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/usuario"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/despliegue"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/evento"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/log/acess_log"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/log/auditoria_log"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/mailer"
)

// Application concentra las dependencias centrales de la aplicación.
type Application struct {
	server *server.HTTPServer
}

// Environment configura y lee el archivo de configuración (configs.json).
func Environment() {
	viper.SetConfigName("configs")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/")
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("error fatal en el archivo de configuración: %w", err))
	}
}

func initDominios(db *gorm.DB) error {
	if _, err := middleware.New(db); err != nil {
		return fmt.Errorf("middleware de acceso: %w", err)
	}
	if _, err := acess_log.New(db); err != nil {
		log.Println("[BOOTSTRAP-LOG] Registro de accesos deshabilitado:", err)
	}
	if _, err := auditoria_log.New(db, auditoria_log.Config{
		Enabled: viper.GetBool("audit.enabled"),
	}); err != nil {
		log.Println("[BOOTSTRAP-LOG] Registro de auditoría deshabilitado:", err)
	}

	rol.New(db)
	parametro.New(db)
	usuario.New(db)
	sistema.New(db)
	infraestructura.New(db)
	evento.New(db)
	despliegue.New(db)
	auth.New(db)
	return nil
}

// New prepara la aplicación (config, base, inyección) y devuelve la instancia.
func New() (*Application, error) {
	Environment()
	log.Println("[BOOTSTRAP-ENV] Configuración de ambiente cargada.")

	jwtConfig := jwt.Config{
		AccessSecret: viper.GetString("security.jwt_access_secret"),
		Issuer:       viper.GetString("app.name"),
		AccessExpiry: time.Duration(viper.GetInt64("security.jwt_access_expiry_min")) * time.Minute,
	}
	if err := jwt.Init(jwtConfig); err != nil {
		return nil, fmt.Errorf("[BOOTSTRAP-TOKEN] Falla al crear el generador de tokens: %w", err)
	}
	log.Println("[BOOTSTRAP-TOKEN] Generador de tokens inicializado.")

	mailerCfg := mailer.SMTPConfig{
		Host:       viper.GetString("smtp.host"),
		Port:       viper.GetString("smtp.port"),
		Username:   viper.GetString("smtp.username"),
		Password:   viper.GetString("smtp.password"),
		Encryption: viper.GetString("smtp.encryption"),
		Address:    viper.GetString("smtp.address"),
	}
	if _, err := mailer.New(mailerCfg); err != nil {
		log.Println("[BOOTSTRAP-MAILER] Falla al iniciar el servicio de correo:", err)
	} else {
		log.Println("[BOOTSTRAP-MAILER] Servicio de correo inicializado.")
	}

	db := postgres.InitPostgres()
	log.Println("[BOOTSTRAP-DATABASE] Conexión a la base de datos inicializada.")

	if err := initDominios(db); err != nil {
		return nil, fmt.Errorf("[BOOTSTRAP-DI] Falla al inicializar los dominios: %w", err)
	}
	log.Println("[BOOTSTRAP-DI] Contenedor de dependencias inicializado.")

	return &Application{
		server: server.NewHTTPServer(),
	}, nil
}

func startNgrokForward(ctx context.Context, token string, port int) error {
	agent, err := ngrok.NewAgent(
		ngrok.WithAuthtoken(token),
		ngrok.WithAutoConnect(true),
	)
	if err != nil {
		return fmt.Errorf("error al crear el agente ngrok: %w", err)
	}

	upstream := ngrok.WithUpstream(fmt.Sprintf("http://127.0.0.1:%d", port))
	endpoint, err := agent.Forward(ctx, upstream)
	if err != nil {
		if ngErr, ok := err.(ngrok.Error); ok {
			log.Printf("[NGROK] error al crear el forward (code=%s): %v", ngErr.Code(), ngErr)
		}
		return fmt.Errorf("error al iniciar el forward de ngrok: %w", err)
	}

	log.Println("[NGROK] Endpoint en línea:", endpoint.URL())

	<-ctx.Done()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := endpoint.CloseWithContext(closeCtx); err != nil {
		return fmt.Errorf("error al cerrar el endpoint ngrok: %w", err)
	}
	if err := agent.Disconnect(); err != nil {
		return fmt.Errorf("error al desconectar el agente ngrok: %w", err)
	}
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	log.Println("[BOOTSTRAP] Iniciando servidor en el ambiente:", viper.GetString("app.env"))

	errCh := make(chan error, 1)

	go func() {
		errCh <- a.server.Start()
	}()

	if viper.GetBool("test.ngrok.live") {
		token := viper.GetString("test.ngrok.token")
		if token == "" {
			log.Println("[NGROK] test.ngrok.live=true pero test.ngrok.token está vacío; ngrok no será iniciado")
		} else {
			port := viper.GetInt("server.http.port")
			go func() {
				if err := startNgrokForward(ctx, token, port); err != nil {
					log.Println("[NGROK] error:", err)
				}
			}()
		}
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("falla al cerrar el servidor: %w", err)
		}
		return <-errCh

	case err := <-errCh:
		return err
	}
}

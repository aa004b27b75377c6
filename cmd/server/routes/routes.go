package routes

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/application/auth"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/middleware"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/infraestructura"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/parametro"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/rol"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/sistema"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/usuario"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/despliegue"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/operaciones/domain/evento"

	_ "github.com/Americo7/SistemaInfra-2-sub002/docs"
)

func SetupRouter() *gin.Engine {
	env := viper.GetString("app.env")
	switch env {
	case "dev":
		gin.SetMode(gin.DebugMode)
	case "prod":
		gin.SetMode(gin.ReleaseMode)
	case "":
		fmt.Println("ADVERTENCIA: 'app.env' no definido en la configuración. Se asume 'dev'.")
		gin.SetMode(gin.DebugMode)
	default:
		fmt.Printf("ERROR: valor de ambiente inválido '%s'. Debe ser 'dev' o 'prod'.\n", env)
		os.Exit(1)
	}

	r := gin.Default()

	// Disponible en /doc/index.html
	r.GET("/doc/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	SetupApiRoutes(r)
	return r
}

func SetupApiRoutes(r *gin.Engine) {
	mw := middleware.MustUse().Middleware
	api := r.Group("/api", mw.RegistroAcceso())

	auth.MustUse().Controller.RegisterRoutes(api)
	rol.MustUse().Controller.RegisterRoutes(api)
	parametro.MustUse().Controller.RegisterRoutes(api)
	usuario.MustUse().Controller.RegisterRoutes(api)
	sistema.MustUse().Controller.RegisterRoutes(api)
	infraestructura.MustUse().Controller.RegisterRoutes(api)
	evento.MustUse().Controller.RegisterRoutes(api)
	despliegue.MustUse().Controller.RegisterRoutes(api)
}

package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/log/acess_log"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/rest_err"
)

const claveLogin = "acceso.login"

// Roles conocidos por la aplicación; el catálogo vive en la tabla roles.
const (
	RolAdministrador = "ADMINISTRADOR"
	RolOperador      = "OPERADOR"
	RolConsulta      = "CONSULTA"
)

type Middleware interface {
	SetContextAutorization() gin.HandlerFunc
	AutorizarRol(requeridos ...string) gin.HandlerFunc
	RegistroAcceso() gin.HandlerFunc
}

type impl struct {
	repository Repository
	cache      *gocache.Cache
}

func NewMiddleware(repository Repository) Middleware {
	return &impl{
		repository: repository,
		// Los tokens resueltos se cachean brevemente para no golpear la
		// base en cada petición.
		cache: gocache.New(30*time.Second, time.Minute),
	}
}

// SetContextAutorization resuelve el token Bearer hacia un Login y lo deja
// en el contexto de la petición.
func (mw *impl) SetContextAutorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := extractBearerToken(authHeader)

		if token == "" {
			err := rest_err.NewForbiddenError(nil, "Token ausente o inválido.")
			c.AbortWithStatusJSON(err.Code, err)
			return
		}

		rayTrace := c.GetHeader("X-Request-ID")
		if rayTrace == "" {
			rayTrace = uuid.NewString()
		}
		c.Header("X-Request-ID", rayTrace)

		var login Login
		if cached, found := mw.cache.Get(token); found {
			login = cached.(Login)
		} else {
			resolved, err := mw.repository.GetLogin(c.Request.Context(), token)
			if err != nil {
				if errors.Is(err, ErrTokenNoEncontrado) {
					e := rest_err.NewForbiddenError(&rayTrace, "Token de acceso no encontrado o vencido.")
					c.AbortWithStatusJSON(e.Code, e)
					return
				}
				e := rest_err.NewInternalServerError(&rayTrace, "Falla al validar el token de acceso.", nil)
				c.AbortWithStatusJSON(e.Code, e)
				return
			}
			login = resolved
			mw.cache.SetDefault(token, login)
		}

		login.Metadata = Metadata{RayTraceCode: rayTrace}
		c.Set(claveLogin, &login)
		c.Next()
	}
}

// AutorizarRol corta la petición si el actor no posee ninguno de los roles.
func (mw *impl) AutorizarRol(requeridos ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, ok := GetAuthenticatedUser(c)
		if !ok {
			e := rest_err.NewForbiddenError(nil, "Usuario no autenticado.")
			c.AbortWithStatusJSON(e.Code, e)
			return
		}
		if !login.TieneRol(requeridos...) {
			e := rest_err.NewForbiddenError(&login.Metadata.RayTraceCode, "Acción no permitida para el rol del usuario.")
			c.AbortWithStatusJSON(e.Code, e)
			return
		}
		c.Next()
	}
}

// RegistroAcceso escribe una fila de access_log por petición.
func (mw *impl) RegistroAcceso() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now().UTC()
		c.Next()

		entrada := acess_log.AccessLog{
			RayTraceCode:   c.Writer.Header().Get("X-Request-ID"),
			Metodo:         c.Request.Method,
			Ruta:           c.Request.URL.Path,
			Host:           c.Request.Host,
			CodigoEstado:   c.Writer.Status(),
			IP:             c.ClientIP(),
			UserAgent:      c.Request.UserAgent(),
			Referer:        c.Request.Referer(),
			ContentType:    c.ContentType(),
			Idioma:         c.GetHeader("Accept-Language"),
			FechaSolicitud: inicio,
			LatenciaMs:     float64(time.Since(inicio).Microseconds()) / 1000.0,
		}
		if login, ok := GetAuthenticatedUser(c); ok {
			id := login.Usuario.ID
			entrada.IDUsuario = &id
			entrada.Identificador = login.Usuario.NombreUsuario
		}
		acess_log.LogAsync(c.Request.Context(), entrada)
	}
}

// GetAuthenticatedUser recupera el Login del contexto de la petición.
func GetAuthenticatedUser(c *gin.Context) (*Login, bool) {
	value, exists := c.Get(claveLogin)
	if !exists {
		return nil, false
	}
	login, ok := value.(*Login)
	return login, ok
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/middleware"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/usuario"
	auditoria "github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/log/auditoria_log"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/mailer"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/rest_err"
)

type Controller interface {
	RegisterRoutes(r *gin.RouterGroup)
}

type implController struct {
	service Service
}

func NewController(service Service) Controller {
	return &implController{service: service}
}

func (c *implController) RegisterRoutes(r *gin.RouterGroup) {
	grupo := r.Group("/auth")
	grupo.POST("/login", c.login)
	grupo.POST("/logout/:token", c.logout)
	grupo.POST("/otp", c.crearOTP)
	grupo.POST("/password/reset", c.resetPassword)
	grupo.GET("/healthcheck", middleware.MustUse().Middleware.SetContextAutorization(), c.healthcheck)
}

func rayTraceDe(ctx *gin.Context) string {
	traceID := ctx.GetHeader("X-Request-ID")
	if traceID == "" {
		traceID = uuid.NewString()
	}
	ctx.Header("X-Request-ID", traceID)
	return traceID
}

// login godoc
// @Summary      Autentica al usuario y emite un token de acceso
// @Description  Acepta el nombre de usuario o el correo como identificador.
// @Description  Todo token vigente anterior del usuario queda revocado.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credenciales"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} rest_err.RestErr
// @Failure      404 {object} rest_err.RestErr
// @Router       /api/auth/login [post]
func (c *implController) login(ctx *gin.Context) {
	traceID := rayTraceDe(ctx)

	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		e := rest_err.NewBadRequestError(&traceID, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}

	sesion, err := c.service.Login(ctx.Request.Context(), req.Usuario, req.Contrasena)
	if err != nil {
		var e *rest_err.RestErr
		switch {
		case errors.Is(err, ErrCredenciales):
			e = rest_err.NewNotFoundError(&traceID, err.Error())
		case errors.Is(err, ErrTokenDuplicado):
			e = rest_err.NewConflictValidationError(&traceID, err.Error(), nil)
		default:
			e = rest_err.NewInternalServerError(&traceID, "error interno al procesar la petición", nil)
		}
		auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
			Identificador: req.Usuario,
			RayTraceCode:  traceID,
			Dominio:       "auth",
			Accion:        "login",
			Funcion:       "auth.Controller.login",
			Exito:         false,
			DatosEntrada:  auditoria.SerializeData(req.Usuario),
			DatosSalida:   auditoria.SerializeData(e),
		})
		ctx.JSON(e.Code, e)
		return
	}

	response := LoginResponse{
		Usuario:    usuario.ToResponse(sesion.Usuario),
		Roles:      sesion.Roles,
		Token:      sesion.Token.Token,
		Expiracion: sesion.Token.Expiracion,
	}

	idUsuario := sesion.Usuario.ID
	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		IDUsuario:     &idUsuario,
		Identificador: sesion.Usuario.NombreUsuario,
		RayTraceCode:  traceID,
		Dominio:       "auth",
		Accion:        "login",
		Funcion:       "auth.Controller.login",
		Exito:         true,
		DatosEntrada:  auditoria.SerializeData(req.Usuario),
		DatosSalida:   auditoria.SerializeData(response.Usuario),
	})

	ctx.JSON(http.StatusOK, response)
}

// logout godoc
// @Summary      Revoca el token de acceso
// @Tags         auth
// @Produce      json
// @Param        token path string true "Token a revocar"
// @Success      202 "Token revocado"
// @Failure      403 {object} rest_err.RestErr
// @Router       /api/auth/logout/{token} [post]
func (c *implController) logout(ctx *gin.Context) {
	token := ctx.Param("token")
	if err := c.service.RevocarAccessToken(ctx.Request.Context(), token); err != nil {
		e := rest_err.NewForbiddenError(nil, "usuario no autorizado")
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusAccepted, nil)
}

// crearOTP godoc
// @Summary      Genera un código OTP y lo envía por correo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body OTPRequest true "Correo de destino"
// @Success      202 "OTP enviado"
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/auth/otp [post]
func (c *implController) crearOTP(ctx *gin.Context) {
	traceID := rayTraceDe(ctx)

	var req OTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		e := rest_err.NewBadRequestError(&traceID, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}

	if err := c.service.CrearOTP(ctx.Request.Context(), req.Correo); err != nil {
		var e *rest_err.RestErr
		switch {
		case errors.Is(err, ErrOTPExiste):
			e = rest_err.NewConflictValidationError(&traceID, err.Error(), nil)
		case errors.Is(err, usuario.ErrNoEncontrado):
			e = rest_err.NewNotFoundError(&traceID, err.Error())
		case errors.Is(err, mailer.ErrMailerNotInitialized):
			causes := []rest_err.Causes{rest_err.NewCause("mailer", "servicio de correo no inicializado")}
			e = rest_err.NewInternalServerError(&traceID, "error interno al procesar la petición", causes)
		default:
			e = rest_err.NewInternalServerError(&traceID, "error interno al procesar la petición", nil)
		}
		ctx.JSON(e.Code, e)
		return
	}

	ctx.Status(http.StatusAccepted)
}

// resetPassword godoc
// @Summary      Cambia la contraseña validando el código OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body OTPResetPasswordRequest true "Correo, OTP y nueva contraseña"
// @Success      200 "Contraseña cambiada"
// @Failure      403 {object} rest_err.RestErr
// @Router       /api/auth/password/reset [post]
func (c *implController) resetPassword(ctx *gin.Context) {
	traceID := rayTraceDe(ctx)

	var req OTPResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		e := rest_err.NewBadRequestError(&traceID, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}

	err := c.service.CambiarContrasenaConOTP(ctx.Request.Context(), req.Correo, req.OTP, req.Contrasena)
	if err != nil {
		var e *rest_err.RestErr
		switch {
		case errors.Is(err, ErrOTPInvalido):
			e = rest_err.NewForbiddenError(&traceID, err.Error())
		case errors.Is(err, usuario.ErrEntradaInvalida):
			e = rest_err.NewBadRequestError(&traceID, err.Error())
		default:
			e = rest_err.NewInternalServerError(&traceID, "error interno al procesar la petición", nil)
		}
		ctx.JSON(e.Code, e)
		return
	}

	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		Identificador: req.Correo,
		RayTraceCode:  traceID,
		Dominio:       "auth",
		Accion:        "reset_password",
		Funcion:       "auth.Controller.resetPassword",
		Exito:         true,
		DatosEntrada:  auditoria.SerializeData(req.Correo),
	})
	ctx.Status(http.StatusOK)
}

// healthcheck godoc
// @Summary      Devuelve los datos de la sesión vigente
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} LoginResponse
// @Failure      403 {object} rest_err.RestErr
// @Router       /api/auth/healthcheck [get]
func (c *implController) healthcheck(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "usuario no autorizado")
		ctx.JSON(e.Code, e)
		return
	}

	response := LoginResponse{
		Usuario:        usuario.ToResponse(login.Usuario),
		Roles:          login.Roles,
		SistemaHoraUTC: time.Now().UTC(),
	}
	ctx.JSON(http.StatusOK, response)
}

package parametro

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/middleware"
	auditoria "github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/log/auditoria_log"
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
	mw := middleware.MustUse().Middleware
	grupo := r.Group("/parametros", mw.SetContextAutorization())
	grupo.GET("", c.listar)
	grupo.GET("/:id", c.leer)
	grupo.POST("", mw.AutorizarRol(middleware.RolAdministrador), c.crear)
	grupo.PUT("/:id", mw.AutorizarRol(middleware.RolAdministrador), c.actualizar)
	grupo.PATCH("/:id/desactivar", mw.AutorizarRol(middleware.RolAdministrador), c.desactivar)
	grupo.PATCH("/:id/reactivar", mw.AutorizarRol(middleware.RolAdministrador), c.reactivar)
}

// crear godoc
// @Summary      Registra un parámetro de catálogo
// @Tags         parametros
// @Accept       json
// @Produce      json
// @Param        request body CrearParametroRequestDto true "Datos del parámetro"
// @Success      201 {object} ParametroResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/parametros [post]
func (c *implController) crear(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	var dto CrearParametroRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	creado, err := c.service.Crear(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear", err == nil, dto, creado)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusCreated, ToResponse(creado))
}

// listar godoc
// @Summary      Lista parámetros, opcionalmente por grupo
// @Tags         parametros
// @Produce      json
// @Param        grupo query string false "Grupo de catálogo (p.ej. TIPO_EVENTO)"
// @Success      200 {object} ParametrosResponseDto
// @Router       /api/parametros [get]
func (c *implController) listar(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	var dto ListarParametroRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	parametros, err := c.service.Listar(ctx.Request.Context(), dto.Grupo)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	resp := ParametrosResponseDto{Parametros: make([]ParametroResponseDto, 0, len(parametros))}
	for _, p := range parametros {
		resp.Parametros = append(resp.Parametros, ToResponse(p))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) leer(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	id, err := parseID(ctx)
	if err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "id inválido")
		ctx.JSON(e.Code, e)
		return
	}
	p, err := c.service.Leer(ctx.Request.Context(), id)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(p))
}

func (c *implController) actualizar(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	id, err := parseID(ctx)
	if err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "id inválido")
		ctx.JSON(e.Code, e)
		return
	}
	var dto ActualizarParametroRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	p, err := c.service.Actualizar(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar", err == nil, dto, p)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(p))
}

func (c *implController) desactivar(ctx *gin.Context) {
	c.cambiarEstado(ctx, "desactivar", c.service.Desactivar)
}

func (c *implController) reactivar(ctx *gin.Context) {
	c.cambiarEstado(ctx, "reactivar", c.service.Reactivar)
}

func (c *implController) cambiarEstado(ctx *gin.Context, accion string, fn func(context.Context, uint, uint) (Parametro, error)) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	id, err := parseID(ctx)
	if err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "id inválido")
		ctx.JSON(e.Code, e)
		return
	}
	p, err := fn(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, accion, err == nil, id, p)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(p))
}

func auditar(ctx *gin.Context, login *middleware.Login, accion string, exito bool, entrada, salida interface{}) {
	idUsuario := login.Usuario.ID
	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		IDUsuario:     &idUsuario,
		Identificador: login.Usuario.NombreUsuario,
		RayTraceCode:  login.Metadata.RayTraceCode,
		Dominio:       "parametro",
		Accion:        accion,
		Funcion:       "parametro.Controller." + accion,
		Exito:         exito,
		DatosEntrada:  auditoria.SerializeData(entrada),
		DatosSalida:   auditoria.SerializeData(salida),
	})
}

func parseID(ctx *gin.Context) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || v == 0 {
		return 0, ErrEntradaInvalida
	}
	return uint(v), nil
}

func traducirError(rayTrace *string, err error) *rest_err.RestErr {
	switch {
	case errors.Is(err, ErrNoEncontrado):
		return rest_err.NewNotFoundError(rayTrace, err.Error())
	case errors.Is(err, ErrDuplicado):
		return rest_err.NewConflictValidationError(rayTrace, err.Error(), nil)
	case errors.Is(err, ErrEntradaInvalida), errors.Is(err, ErrCodigoNoValido):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

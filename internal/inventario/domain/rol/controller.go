package rol

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

// Controller expone los endpoints HTTP de roles.
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
	grupo := r.Group("/roles", mw.SetContextAutorization())
	grupo.GET("", c.listar)
	grupo.GET("/:id", c.leer)
	grupo.POST("", mw.AutorizarRol(middleware.RolAdministrador), c.crear)
	grupo.PUT("/:id", mw.AutorizarRol(middleware.RolAdministrador), c.actualizar)
	grupo.PATCH("/:id/desactivar", mw.AutorizarRol(middleware.RolAdministrador), c.desactivar)
	grupo.PATCH("/:id/reactivar", mw.AutorizarRol(middleware.RolAdministrador), c.reactivar)
	grupo.DELETE("/:id", mw.AutorizarRol(middleware.RolAdministrador), c.eliminar)
}

// crear godoc
// @Summary      Crea un rol
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        request body CrearRolRequestDto true "Datos del rol"
// @Success      201 {object} RolResponseDto
// @Failure      400 {object} rest_err.RestErr
// @Router       /api/roles [post]
func (c *implController) crear(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	var dto CrearRolRequestDto
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

// leer godoc
// @Summary      Obtiene un rol por id
// @Tags         roles
// @Produce      json
// @Param        id path int true "ID del rol"
// @Success      200 {object} RolResponseDto
// @Failure      404 {object} rest_err.RestErr
// @Router       /api/roles/{id} [get]
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
	rol, err := c.service.Leer(ctx.Request.Context(), id)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(rol))
}

// listar godoc
// @Summary      Lista roles paginados
// @Tags         roles
// @Produce      json
// @Param        page query int false "Página"
// @Param        size query int false "Tamaño de página"
// @Success      200 {object} RolesResponseDto
// @Router       /api/roles [get]
func (c *implController) listar(ctx *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return
	}
	var dto ListarRolRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	if dto.Page < 1 {
		dto.Page = 1
	}
	if dto.PageSize < 1 {
		dto.PageSize = 50
	}
	roles, err := c.service.Listar(ctx.Request.Context(), dto.Page, dto.PageSize)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	resp := RolesResponseDto{Roles: make([]RolResponseDto, 0, len(roles)), Page: dto.Page, Size: dto.PageSize}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, ToResponse(r))
	}
	ctx.JSON(http.StatusOK, resp)
}

// actualizar godoc
// @Summary      Actualiza un rol
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del rol"
// @Param        request body ActualizarRolRequestDto true "Campos a modificar"
// @Success      200 {object} RolResponseDto
// @Failure      404 {object} rest_err.RestErr
// @Router       /api/roles/{id} [put]
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
	var dto ActualizarRolRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	rol, err := c.service.Actualizar(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar", err == nil, dto, rol)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(rol))
}

func (c *implController) desactivar(ctx *gin.Context) {
	c.cambiarEstado(ctx, "desactivar", c.service.Desactivar)
}

func (c *implController) reactivar(ctx *gin.Context) {
	c.cambiarEstado(ctx, "reactivar", c.service.Reactivar)
}

func (c *implController) cambiarEstado(ctx *gin.Context, accion string, fn func(context.Context, uint, uint) (Rol, error)) {
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
	rol, err := fn(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, accion, err == nil, id, rol)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(rol))
}

// eliminar godoc
// @Summary      Elimina físicamente un rol sin referencias
// @Tags         roles
// @Param        id path int true "ID del rol"
// @Success      204
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/roles/{id} [delete]
func (c *implController) eliminar(ctx *gin.Context) {
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
	err = c.service.Eliminar(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar", err == nil, id, nil)
	if err != nil {
		e := traducirError(&login.Metadata.RayTraceCode, err)
		ctx.JSON(e.Code, e)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func auditar(ctx *gin.Context, login *middleware.Login, accion string, exito bool, entrada, salida interface{}) {
	idUsuario := login.Usuario.ID
	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		IDUsuario:     &idUsuario,
		Identificador: login.Usuario.NombreUsuario,
		RayTraceCode:  login.Metadata.RayTraceCode,
		Dominio:       "rol",
		Accion:        accion,
		Funcion:       "rol.Controller." + accion,
		Exito:         exito,
		DatosEntrada:  auditoria.SerializeData(entrada),
		DatosSalida:   auditoria.SerializeData(salida),
	})
}

func parseID(ctx *gin.Context) (uint, error) {
	raw := ctx.Param("id")
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, ErrEntradaInvalida
	}
	return uint(v), nil
}

func traducirError(rayTrace *string, err error) *rest_err.RestErr {
	switch {
	case errors.Is(err, ErrNoEncontrado):
		return rest_err.NewNotFoundError(rayTrace, err.Error())
	case errors.Is(err, ErrNombreDuplicado),
		errors.Is(err, ErrAsignacionesActivas),
		errors.Is(err, ErrIntegridadReferencial):
		return rest_err.NewConflictValidationError(rayTrace, err.Error(), nil)
	case errors.Is(err, ErrEntradaInvalida):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

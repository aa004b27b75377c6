package usuario

import (
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
	admin := mw.AutorizarRol(middleware.RolAdministrador)

	grupo := r.Group("/usuarios", mw.SetContextAutorization())
	grupo.GET("", c.listar)
	grupo.GET("/:id", c.leer)
	grupo.POST("", admin, c.crear)
	grupo.PUT("/:id", admin, c.actualizar)
	grupo.PATCH("/:id/desactivar", admin, c.desactivar)
	grupo.PATCH("/:id/reactivar", admin, c.reactivar)
	grupo.DELETE("/:id", admin, c.eliminar)

	grupo.GET("/:id/roles", c.listarAsignaciones)
	grupo.POST("/:id/roles", admin, c.asignarRol)
	grupo.DELETE("/:id/roles/:idAsignacion", admin, c.revocarRol)
}

func sesion(ctx *gin.Context) (*middleware.Login, bool) {
	login, ok := middleware.GetAuthenticatedUser(ctx)
	if !ok {
		e := rest_err.NewForbiddenError(nil, "sesión no encontrada")
		ctx.JSON(e.Code, e)
		return nil, false
	}
	return login, true
}

func responder(ctx *gin.Context, login *middleware.Login, err error) bool {
	if err == nil {
		return false
	}
	e := traducirError(&login.Metadata.RayTraceCode, err)
	ctx.JSON(e.Code, e)
	return true
}

// crear godoc
// @Summary      Registra un usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        request body CrearUsuarioRequestDto true "Datos del usuario"
// @Success      201 {object} UsuarioResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/usuarios [post]
func (c *implController) crear(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearUsuarioRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	creado, err := c.service.Crear(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear", err == nil, dto.NombreUsuario, creado)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToResponse(creado))
}

func (c *implController) leer(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	u, err := c.service.Leer(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(u))
}

// listar godoc
// @Summary      Lista usuarios paginados
// @Tags         usuarios
// @Produce      json
// @Param        page query int false "Página"
// @Param        size query int false "Tamaño de página"
// @Success      200 {object} UsuariosResponseDto
// @Router       /api/usuarios [get]
func (c *implController) listar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarUsuarioRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	if dto.Page < 1 {
		dto.Page = 1
	}
	if dto.PageSize < 1 {
		dto.PageSize = 50
	}
	usuarios, err := c.service.Listar(ctx.Request.Context(), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := UsuariosResponseDto{Usuarios: make([]UsuarioResponseDto, 0, len(usuarios)), Page: dto.Page, Size: dto.PageSize}
	for _, u := range usuarios {
		resp.Usuarios = append(resp.Usuarios, ToResponse(u))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarUsuarioRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	u, err := c.service.Actualizar(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar", err == nil, dto, u)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(u))
}

func (c *implController) desactivar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	u, err := c.service.Desactivar(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar", err == nil, id, u)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(u))
}

func (c *implController) reactivar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	u, err := c.service.Reactivar(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar", err == nil, id, u)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(u))
}

func (c *implController) eliminar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	err = c.service.Eliminar(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

// asignarRol godoc
// @Summary      Asigna un rol a un usuario con alcance máquina+sistema
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del usuario"
// @Param        request body AsignarRolRequestDto true "Alcance de la asignación"
// @Success      201 {object} AsignacionRolResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/usuarios/{id}/roles [post]
func (c *implController) asignarRol(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	var dto AsignarRolRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	a, err := c.service.AsignarRol(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "asignar_rol", err == nil, dto, a)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToAsignacionResponse(a))
}

func (c *implController) revocarRol(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "idAsignacion")
	if responder(ctx, login, err) {
		return
	}
	a, err := c.service.RevocarRol(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "revocar_rol", err == nil, id, a)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToAsignacionResponse(a))
}

func (c *implController) listarAsignaciones(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	asignaciones, err := c.service.ListarAsignaciones(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]AsignacionRolResponseDto, 0, len(asignaciones))
	for _, a := range asignaciones {
		resp = append(resp, ToAsignacionResponse(a))
	}
	ctx.JSON(http.StatusOK, resp)
}

func auditar(ctx *gin.Context, login *middleware.Login, accion string, exito bool, entrada, salida interface{}) {
	idUsuario := login.Usuario.ID
	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		IDUsuario:     &idUsuario,
		Identificador: login.Usuario.NombreUsuario,
		RayTraceCode:  login.Metadata.RayTraceCode,
		Dominio:       "usuario",
		Accion:        accion,
		Funcion:       "usuario.Controller." + accion,
		Exito:         exito,
		DatosEntrada:  auditoria.SerializeData(entrada),
		DatosSalida:   auditoria.SerializeData(salida),
	})
}

func parseID(ctx *gin.Context, nombre string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(nombre), 10, 32)
	if err != nil || v == 0 {
		return 0, ErrEntradaInvalida
	}
	return uint(v), nil
}

func traducirError(rayTrace *string, err error) *rest_err.RestErr {
	switch {
	case errors.Is(err, ErrNoEncontrado), errors.Is(err, ErrAsignacionNoExiste):
		return rest_err.NewNotFoundError(rayTrace, err.Error())
	case errors.Is(err, ErrDuplicado),
		errors.Is(err, ErrRolActivoDuplicado),
		errors.Is(err, ErrRolesActivos),
		errors.Is(err, ErrIntegridadReferencial):
		return rest_err.NewConflictValidationError(rayTrace, err.Error(), nil)
	case errors.Is(err, ErrReferenciaInactiva):
		return rest_err.NewUnprocessableError(rayTrace, err.Error())
	case errors.Is(err, ErrEntradaInvalida):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

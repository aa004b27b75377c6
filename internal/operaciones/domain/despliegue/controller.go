package despliegue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/middleware"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/estado"
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
	escritores := mw.AutorizarRol(middleware.RolAdministrador, middleware.RolOperador)

	grupo := r.Group("/despliegues", mw.SetContextAutorization())
	grupo.GET("", c.listar)
	grupo.GET("/:id", c.leer)
	grupo.POST("", escritores, c.crear)
	grupo.PUT("/:id", escritores, c.actualizar)
	grupo.PATCH("/:id/estado", escritores, c.cambiarEstado)
	grupo.PATCH("/:id/desactivar", escritores, c.desactivar)
	grupo.PATCH("/:id/reactivar", escritores, c.reactivar)
	grupo.GET("/:id/bitacora", c.listarBitacora)
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
// @Summary      Solicita un despliegue de componente sobre una máquina
// @Tags         despliegues
// @Accept       json
// @Produce      json
// @Param        request body CrearDespliegueRequestDto true "Datos del despliegue"
// @Success      201 {object} DespliegueResponseDto
// @Failure      400 {object} rest_err.RestErr
// @Failure      422 {object} rest_err.RestErr
// @Router       /api/despliegues [post]
func (c *implController) crear(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearDespliegueRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	creado, err := c.service.Crear(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear", err == nil, dto, creado)
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
	d, err := c.service.Leer(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(d))
}

// listar godoc
// @Summary      Lista despliegues con filtros por estado, componente y máquina
// @Tags         despliegues
// @Produce      json
// @Param        page query int false "Página"
// @Param        size query int false "Tamaño de página"
// @Param        estado query string false "Filtro por estado del flujo"
// @Param        id_componente query int false "Filtro por componente"
// @Param        id_maquina query int false "Filtro por máquina"
// @Success      200 {array} DespliegueResponseDto
// @Router       /api/despliegues [get]
func (c *implController) listar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var filtro ListarDespliegueRequestDto
	_ = ctx.ShouldBindQuery(&filtro)
	despliegues, err := c.service.Listar(ctx.Request.Context(), filtro)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]DespliegueResponseDto, 0, len(despliegues))
	for _, d := range despliegues {
		resp = append(resp, ToResponse(d))
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
	var dto ActualizarDespliegueRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	d, err := c.service.Actualizar(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar", err == nil, dto, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(d))
}

// cambiarEstado godoc
// @Summary      Transiciona el estado del despliegue dentro del flujo
// @Description  Cada transición válida escribe exactamente una fila en la
// @Description  bitácora del despliegue, en la misma transacción del cambio.
// @Tags         despliegues
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del despliegue"
// @Param        request body CambiarEstadoRequestDto true "Estado destino"
// @Success      200 {object} DespliegueResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Failure      422 {object} rest_err.RestErr
// @Router       /api/despliegues/{id}/estado [patch]
func (c *implController) cambiarEstado(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	var dto CambiarEstadoRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	d, fila, err := c.service.CambiarEstado(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "cambiar_estado", err == nil, dto, fila)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(d))
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
	d, err := c.service.Desactivar(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar", err == nil, id, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(d))
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
	d, err := c.service.Reactivar(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar", err == nil, id, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(d))
}

// listarBitacora godoc
// @Summary      Lista la bitácora de transiciones del despliegue en orden de commit
// @Tags         despliegues
// @Produce      json
// @Param        id path int true "ID del despliegue"
// @Success      200 {array} BitacoraResponseDto
// @Failure      404 {object} rest_err.RestErr
// @Router       /api/despliegues/{id}/bitacora [get]
func (c *implController) listarBitacora(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	filas, err := c.service.ListarBitacora(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]BitacoraResponseDto, 0, len(filas))
	for _, fila := range filas {
		resp = append(resp, ToBitacoraResponse(fila))
	}
	ctx.JSON(http.StatusOK, resp)
}

func auditar(ctx *gin.Context, login *middleware.Login, accion string, exito bool, entrada, salida interface{}) {
	idUsuario := login.Usuario.ID
	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		IDUsuario:     &idUsuario,
		Identificador: login.Usuario.NombreUsuario,
		RayTraceCode:  login.Metadata.RayTraceCode,
		Dominio:       "despliegue",
		Accion:        accion,
		Funcion:       "despliegue.Controller." + accion,
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
	var invalida *estado.TransicionInvalidaError
	switch {
	case errors.Is(err, ErrNoEncontrado):
		return rest_err.NewNotFoundError(rayTrace, err.Error())
	case errors.Is(err, ErrConflictoTransicion):
		return rest_err.NewConflictValidationError(rayTrace, err.Error(), nil)
	case errors.As(err, &invalida):
		return rest_err.NewUnprocessableError(rayTrace, err.Error())
	case errors.Is(err, ErrReferenciaInactiva):
		return rest_err.NewUnprocessableError(rayTrace, err.Error())
	case errors.Is(err, ErrTipoRespaldoNoValido),
		errors.Is(err, ErrEntradaInvalida):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

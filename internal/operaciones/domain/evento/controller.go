package evento

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

	grupo := r.Group("/eventos", mw.SetContextAutorization())
	grupo.GET("", c.listar)
	grupo.GET("/:id", c.leer)
	grupo.POST("", escritores, c.crear)
	grupo.PUT("/:id", escritores, c.actualizar)
	grupo.PATCH("/:id/estado", escritores, c.cambiarEstado)
	grupo.PATCH("/:id/desactivar", escritores, c.desactivar)
	grupo.PATCH("/:id/reactivar", escritores, c.reactivar)
	grupo.GET("/:id/bitacora", c.listarBitacora)
	grupo.GET("/:id/infraestructura", c.listarInfra)
	grupo.POST("/:id/infraestructura", escritores, c.vincularInfra)
	grupo.PATCH("/:id/infraestructura/:idVinculo/desvincular", escritores, c.desvincularInfra)
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
// @Summary      Registra un evento operativo
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Param        request body CrearEventoRequestDto true "Datos del evento"
// @Success      201 {object} EventoResponseDto
// @Failure      400 {object} rest_err.RestErr
// @Router       /api/eventos [post]
func (c *implController) crear(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearEventoRequestDto
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
	e, err := c.service.Leer(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(e))
}

// listar godoc
// @Summary      Lista eventos con filtros de estado y tipo
// @Tags         eventos
// @Produce      json
// @Param        page query int false "Página"
// @Param        size query int false "Tamaño de página"
// @Param        estado query string false "Filtro por estado del flujo"
// @Param        tipo query string false "Filtro por tipo de evento"
// @Success      200 {array} EventoResponseDto
// @Router       /api/eventos [get]
func (c *implController) listar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var filtro ListarEventoRequestDto
	_ = ctx.ShouldBindQuery(&filtro)
	eventos, err := c.service.Listar(ctx.Request.Context(), filtro)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]EventoResponseDto, 0, len(eventos))
	for _, e := range eventos {
		resp = append(resp, ToResponse(e))
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
	var dto ActualizarEventoRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	e, err := c.service.Actualizar(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar", err == nil, dto, e)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(e))
}

// cambiarEstado godoc
// @Summary      Transiciona el estado del evento dentro del flujo
// @Description  Cada transición válida escribe exactamente una fila en la
// @Description  bitácora del evento, en la misma transacción del cambio.
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del evento"
// @Param        request body CambiarEstadoRequestDto true "Estado destino"
// @Success      200 {object} EventoResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Failure      422 {object} rest_err.RestErr
// @Router       /api/eventos/{id}/estado [patch]
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
	e, fila, err := c.service.CambiarEstado(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "cambiar_estado", err == nil, dto, fila)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(e))
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
	e, err := c.service.Desactivar(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar", err == nil, id, e)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(e))
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
	e, err := c.service.Reactivar(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar", err == nil, id, e)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToResponse(e))
}

// listarBitacora godoc
// @Summary      Lista la bitácora de transiciones del evento en orden de commit
// @Tags         eventos
// @Produce      json
// @Param        id path int true "ID del evento"
// @Success      200 {array} BitacoraResponseDto
// @Failure      404 {object} rest_err.RestErr
// @Router       /api/eventos/{id}/bitacora [get]
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

// vincularInfra godoc
// @Summary      Vincula infraestructura afectada al evento
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Param        id path int true "ID del evento"
// @Param        request body VincularInfraRequestDto true "Referencias afectadas"
// @Success      201 {object} InfraAfectadaResponseDto
// @Failure      422 {object} rest_err.RestErr
// @Router       /api/eventos/{id}/infraestructura [post]
func (c *implController) vincularInfra(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	var dto VincularInfraRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	v, err := c.service.VincularInfra(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "vincular_infra", err == nil, dto, v)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToInfraResponse(v))
}

func (c *implController) desvincularInfra(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	idVinculo, err := parseID(ctx, "idVinculo")
	if responder(ctx, login, err) {
		return
	}
	v, err := c.service.DesvincularInfra(ctx.Request.Context(), idVinculo, login.Usuario.ID)
	auditar(ctx, login, "desvincular_infra", err == nil, idVinculo, v)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToInfraResponse(v))
}

func (c *implController) listarInfra(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx, "id")
	if responder(ctx, login, err) {
		return
	}
	vinculos, err := c.service.ListarInfra(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]InfraAfectadaResponseDto, 0, len(vinculos))
	for _, v := range vinculos {
		resp = append(resp, ToInfraResponse(v))
	}
	ctx.JSON(http.StatusOK, resp)
}

func auditar(ctx *gin.Context, login *middleware.Login, accion string, exito bool, entrada, salida interface{}) {
	idUsuario := login.Usuario.ID
	auditoria.LogAsync(ctx.Request.Context(), auditoria.AuditLog{
		IDUsuario:     &idUsuario,
		Identificador: login.Usuario.NombreUsuario,
		RayTraceCode:  login.Metadata.RayTraceCode,
		Dominio:       "evento",
		Accion:        accion,
		Funcion:       "evento.Controller." + accion,
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
	case errors.Is(err, ErrInfraSinReferencia),
		errors.Is(err, ErrTipoEventoNoValido),
		errors.Is(err, ErrEstadoNoPermitido),
		errors.Is(err, ErrEntradaInvalida):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

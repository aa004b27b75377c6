package sistema

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
	escritores := mw.AutorizarRol(middleware.RolAdministrador, middleware.RolOperador)
	admin := mw.AutorizarRol(middleware.RolAdministrador)

	sistemas := r.Group("/sistemas", mw.SetContextAutorization())
	sistemas.GET("", c.listarSistemas)
	sistemas.GET("/:id", c.leerSistema)
	sistemas.POST("", escritores, c.crearSistema)
	sistemas.PUT("/:id", escritores, c.actualizarSistema)
	sistemas.PATCH("/:id/desactivar", escritores, c.desactivarSistema)
	sistemas.PATCH("/:id/reactivar", escritores, c.reactivarSistema)
	sistemas.DELETE("/:id", admin, c.eliminarSistema)

	entidades := r.Group("/entidades", mw.SetContextAutorization())
	entidades.GET("", c.listarEntidades)
	entidades.GET("/:id", c.leerEntidad)
	entidades.POST("", escritores, c.crearEntidad)
	entidades.PUT("/:id", escritores, c.actualizarEntidad)
	entidades.PATCH("/:id/desactivar", escritores, c.desactivarEntidad)
	entidades.PATCH("/:id/reactivar", escritores, c.reactivarEntidad)
	entidades.DELETE("/:id", admin, c.eliminarEntidad)

	componentes := r.Group("/componentes", mw.SetContextAutorization())
	componentes.GET("", c.listarComponentes)
	componentes.GET("/:id", c.leerComponente)
	componentes.POST("", escritores, c.crearComponente)
	componentes.PUT("/:id", escritores, c.actualizarComponente)
	componentes.PATCH("/:id/desactivar", escritores, c.desactivarComponente)
	componentes.PATCH("/:id/reactivar", escritores, c.reactivarComponente)
	componentes.DELETE("/:id", admin, c.eliminarComponente)
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

// crearSistema godoc
// @Summary      Registra un sistema
// @Tags         sistemas
// @Accept       json
// @Produce      json
// @Param        request body CrearSistemaRequestDto true "Datos del sistema"
// @Success      201 {object} SistemaResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/sistemas [post]
func (c *implController) crearSistema(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearSistemaRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	creado, err := c.service.CrearSistema(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_sistema", err == nil, dto, creado)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToSistemaResponse(creado))
}

func (c *implController) leerSistema(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	s, err := c.service.LeerSistema(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToSistemaResponse(s))
}

// listarSistemas godoc
// @Summary      Lista sistemas paginados
// @Tags         sistemas
// @Produce      json
// @Param        page query int false "Página"
// @Param        size query int false "Tamaño de página"
// @Success      200 {array} SistemaResponseDto
// @Router       /api/sistemas [get]
func (c *implController) listarSistemas(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	sistemas, err := c.service.ListarSistemas(ctx.Request.Context(), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]SistemaResponseDto, 0, len(sistemas))
	for _, s := range sistemas {
		resp = append(resp, ToSistemaResponse(s))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarSistema(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarSistemaRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	s, err := c.service.ActualizarSistema(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_sistema", err == nil, dto, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToSistemaResponse(s))
}

func (c *implController) desactivarSistema(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	s, err := c.service.DesactivarSistema(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_sistema", err == nil, id, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToSistemaResponse(s))
}

func (c *implController) reactivarSistema(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	s, err := c.service.ReactivarSistema(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_sistema", err == nil, id, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToSistemaResponse(s))
}

func (c *implController) eliminarSistema(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarSistema(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_sistema", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

// crearEntidad godoc
// @Summary      Registra una entidad dueña dentro de un sistema
// @Tags         entidades
// @Accept       json
// @Produce      json
// @Param        request body CrearEntidadRequestDto true "Datos de la entidad"
// @Success      201 {object} EntidadResponseDto
// @Failure      422 {object} rest_err.RestErr
// @Router       /api/entidades [post]
func (c *implController) crearEntidad(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearEntidadRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	creada, err := c.service.CrearEntidad(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_entidad", err == nil, dto, creada)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToEntidadResponse(creada))
}

func (c *implController) leerEntidad(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	e, err := c.service.LeerEntidad(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToEntidadResponse(e))
}

func (c *implController) listarEntidades(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	idSistema := parseQueryID(ctx, "id_sistema")
	entidades, err := c.service.ListarEntidades(ctx.Request.Context(), idSistema, dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]EntidadResponseDto, 0, len(entidades))
	for _, e := range entidades {
		resp = append(resp, ToEntidadResponse(e))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarEntidad(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarEntidadRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	e, err := c.service.ActualizarEntidad(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_entidad", err == nil, dto, e)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToEntidadResponse(e))
}

func (c *implController) desactivarEntidad(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	e, err := c.service.DesactivarEntidad(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_entidad", err == nil, id, e)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToEntidadResponse(e))
}

func (c *implController) reactivarEntidad(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	e, err := c.service.ReactivarEntidad(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_entidad", err == nil, id, e)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToEntidadResponse(e))
}

func (c *implController) eliminarEntidad(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarEntidad(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_entidad", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

// crearComponente godoc
// @Summary      Registra un componente desplegable de un sistema
// @Tags         componentes
// @Accept       json
// @Produce      json
// @Param        request body CrearComponenteRequestDto true "Datos del componente"
// @Success      201 {object} ComponenteResponseDto
// @Failure      422 {object} rest_err.RestErr
// @Router       /api/componentes [post]
func (c *implController) crearComponente(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearComponenteRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	creado, err := c.service.CrearComponente(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_componente", err == nil, dto, creado)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToComponenteResponse(creado))
}

func (c *implController) leerComponente(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	comp, err := c.service.LeerComponente(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToComponenteResponse(comp))
}

func (c *implController) listarComponentes(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	idSistema := parseQueryID(ctx, "id_sistema")
	componentes, err := c.service.ListarComponentes(ctx.Request.Context(), idSistema, dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]ComponenteResponseDto, 0, len(componentes))
	for _, comp := range componentes {
		resp = append(resp, ToComponenteResponse(comp))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarComponente(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarComponenteRequestDto
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return
	}
	comp, err := c.service.ActualizarComponente(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_componente", err == nil, dto, comp)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToComponenteResponse(comp))
}

func (c *implController) desactivarComponente(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	comp, err := c.service.DesactivarComponente(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_componente", err == nil, id, comp)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToComponenteResponse(comp))
}

func (c *implController) reactivarComponente(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	comp, err := c.service.ReactivarComponente(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_componente", err == nil, id, comp)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToComponenteResponse(comp))
}

func (c *implController) eliminarComponente(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarComponente(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_componente", err == nil, id, nil)
	if responder(ctx, login, err) {
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
		Dominio:       "sistema",
		Accion:        accion,
		Funcion:       "sistema.Controller." + accion,
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

func parseQueryID(ctx *gin.Context, nombre string) uint {
	v, err := strconv.ParseUint(ctx.Query(nombre), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func traducirError(rayTrace *string, err error) *rest_err.RestErr {
	switch {
	case errors.Is(err, ErrNoEncontrado):
		return rest_err.NewNotFoundError(rayTrace, err.Error())
	case errors.Is(err, ErrCodigoDuplicado),
		errors.Is(err, ErrIntegridadReferencial),
		errors.Is(err, ErrDependientesActivos):
		return rest_err.NewConflictValidationError(rayTrace, err.Error(), nil)
	case errors.Is(err, ErrSistemaInactivo):
		return rest_err.NewUnprocessableError(rayTrace, err.Error())
	case errors.Is(err, ErrEntradaInvalida):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

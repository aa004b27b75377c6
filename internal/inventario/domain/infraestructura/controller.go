package infraestructura

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

	dcs := r.Group("/data-centers", mw.SetContextAutorization())
	dcs.GET("", c.listarDataCenters)
	dcs.GET("/:id", c.leerDataCenter)
	dcs.POST("", escritores, c.crearDataCenter)
	dcs.PUT("/:id", escritores, c.actualizarDataCenter)
	dcs.PATCH("/:id/desactivar", escritores, c.desactivarDataCenter)
	dcs.PATCH("/:id/reactivar", escritores, c.reactivarDataCenter)
	dcs.DELETE("/:id", admin, c.eliminarDataCenter)

	hw := r.Group("/hardware", mw.SetContextAutorization())
	hw.GET("", c.listarHardware)
	hw.GET("/:id", c.leerHardware)
	hw.POST("", escritores, c.crearHardware)
	hw.PUT("/:id", escritores, c.actualizarHardware)
	hw.PATCH("/:id/desactivar", escritores, c.desactivarHardware)
	hw.PATCH("/:id/reactivar", escritores, c.reactivarHardware)
	hw.DELETE("/:id", admin, c.eliminarHardware)

	srv := r.Group("/servidores", mw.SetContextAutorization())
	srv.GET("", c.listarServidores)
	srv.GET("/:id", c.leerServidor)
	srv.POST("", escritores, c.crearServidor)
	srv.PUT("/:id", escritores, c.actualizarServidor)
	srv.PATCH("/:id/desactivar", escritores, c.desactivarServidor)
	srv.PATCH("/:id/reactivar", escritores, c.reactivarServidor)
	srv.DELETE("/:id", admin, c.eliminarServidor)

	maq := r.Group("/maquinas", mw.SetContextAutorization())
	maq.GET("", c.listarMaquinas)
	maq.GET("/:id", c.leerMaquina)
	maq.POST("", escritores, c.crearMaquina)
	maq.PUT("/:id", escritores, c.actualizarMaquina)
	maq.PATCH("/:id/desactivar", escritores, c.desactivarMaquina)
	maq.PATCH("/:id/reactivar", escritores, c.reactivarMaquina)
	maq.DELETE("/:id", admin, c.eliminarMaquina)

	cl := r.Group("/clusters", mw.SetContextAutorization())
	cl.GET("", c.listarClusters)
	cl.GET("/:id", c.leerCluster)
	cl.POST("", escritores, c.crearCluster)
	cl.PUT("/:id", escritores, c.actualizarCluster)
	cl.PATCH("/:id/desactivar", escritores, c.desactivarCluster)
	cl.PATCH("/:id/reactivar", escritores, c.reactivarCluster)
	cl.DELETE("/:id", admin, c.eliminarCluster)

	vin := r.Group("/servidores-maquinas", mw.SetContextAutorization())
	vin.GET("", c.listarVinculos)
	vin.POST("", escritores, c.vincular)
	vin.PATCH("/:id/desvincular", escritores, c.desvincular)

	asg := r.Group("/asignaciones", mw.SetContextAutorization())
	asg.GET("", c.listarAsignaciones)
	asg.POST("", escritores, c.asignar)
	asg.PATCH("/:id/desasignar", escritores, c.desasignar)
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

func leerCuerpo(ctx *gin.Context, login *middleware.Login, dto interface{}) bool {
	if err := ctx.ShouldBindJSON(dto); err != nil {
		e := rest_err.NewBadRequestError(&login.Metadata.RayTraceCode, "cuerpo de la petición inválido")
		ctx.JSON(e.Code, e)
		return false
	}
	return true
}

// crearDataCenter godoc
// @Summary      Registra un data center
// @Tags         infraestructura
// @Accept       json
// @Produce      json
// @Param        request body CrearDataCenterRequestDto true "Datos del data center"
// @Success      201 {object} DataCenterResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/data-centers [post]
func (c *implController) crearDataCenter(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearDataCenterRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	d, err := c.service.CrearDataCenter(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_data_center", err == nil, dto, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToDataCenterResponse(d))
}

func (c *implController) leerDataCenter(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	d, err := c.service.LeerDataCenter(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToDataCenterResponse(d))
}

func (c *implController) listarDataCenters(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	dcs, err := c.service.ListarDataCenters(ctx.Request.Context(), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]DataCenterResponseDto, 0, len(dcs))
	for _, d := range dcs {
		resp = append(resp, ToDataCenterResponse(d))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarDataCenter(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarDataCenterRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	d, err := c.service.ActualizarDataCenter(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_data_center", err == nil, dto, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToDataCenterResponse(d))
}

func (c *implController) desactivarDataCenter(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	d, err := c.service.DesactivarDataCenter(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_data_center", err == nil, id, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToDataCenterResponse(d))
}

func (c *implController) reactivarDataCenter(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	d, err := c.service.ReactivarDataCenter(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_data_center", err == nil, id, d)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToDataCenterResponse(d))
}

func (c *implController) eliminarDataCenter(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarDataCenter(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_data_center", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *implController) crearHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearHardwareRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	h, err := c.service.CrearHardware(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_hardware", err == nil, dto, h)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToHardwareResponse(h))
}

func (c *implController) leerHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	h, err := c.service.LeerHardware(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToHardwareResponse(h))
}

func (c *implController) listarHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	hws, err := c.service.ListarHardware(ctx.Request.Context(), parseQueryID(ctx, "id_data_center"), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]HardwareResponseDto, 0, len(hws))
	for _, h := range hws {
		resp = append(resp, ToHardwareResponse(h))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarHardwareRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	h, err := c.service.ActualizarHardware(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_hardware", err == nil, dto, h)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToHardwareResponse(h))
}

func (c *implController) desactivarHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	h, err := c.service.DesactivarHardware(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_hardware", err == nil, id, h)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToHardwareResponse(h))
}

func (c *implController) reactivarHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	h, err := c.service.ReactivarHardware(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_hardware", err == nil, id, h)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToHardwareResponse(h))
}

func (c *implController) eliminarHardware(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarHardware(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_hardware", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *implController) crearServidor(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearServidorRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	s, err := c.service.CrearServidor(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_servidor", err == nil, dto, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToServidorResponse(s))
}

func (c *implController) leerServidor(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	s, err := c.service.LeerServidor(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToServidorResponse(s))
}

func (c *implController) listarServidores(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	servidores, err := c.service.ListarServidores(ctx.Request.Context(), parseQueryID(ctx, "id_hardware"), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]ServidorResponseDto, 0, len(servidores))
	for _, s := range servidores {
		resp = append(resp, ToServidorResponse(s))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarServidor(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarServidorRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	s, err := c.service.ActualizarServidor(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_servidor", err == nil, dto, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToServidorResponse(s))
}

// desactivarServidor godoc
// @Summary      Desactiva un servidor sin vínculos activos
// @Tags         infraestructura
// @Produce      json
// @Param        id path int true "ID del servidor"
// @Success      200 {object} ServidorResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/servidores/{id}/desactivar [patch]
func (c *implController) desactivarServidor(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	s, err := c.service.DesactivarServidor(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_servidor", err == nil, id, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToServidorResponse(s))
}

func (c *implController) reactivarServidor(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	s, err := c.service.ReactivarServidor(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_servidor", err == nil, id, s)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToServidorResponse(s))
}

func (c *implController) eliminarServidor(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarServidor(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_servidor", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *implController) crearMaquina(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearMaquinaRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	m, err := c.service.CrearMaquina(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_maquina", err == nil, dto, m)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToMaquinaResponse(m))
}

func (c *implController) leerMaquina(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	m, err := c.service.LeerMaquina(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToMaquinaResponse(m))
}

func (c *implController) listarMaquinas(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	maquinas, err := c.service.ListarMaquinas(ctx.Request.Context(), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]MaquinaResponseDto, 0, len(maquinas))
	for _, m := range maquinas {
		resp = append(resp, ToMaquinaResponse(m))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarMaquina(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarMaquinaRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	m, err := c.service.ActualizarMaquina(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_maquina", err == nil, dto, m)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToMaquinaResponse(m))
}

func (c *implController) desactivarMaquina(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	m, err := c.service.DesactivarMaquina(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_maquina", err == nil, id, m)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToMaquinaResponse(m))
}

func (c *implController) reactivarMaquina(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	m, err := c.service.ReactivarMaquina(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_maquina", err == nil, id, m)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToMaquinaResponse(m))
}

func (c *implController) eliminarMaquina(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarMaquina(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_maquina", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *implController) crearCluster(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto CrearClusterRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	cl, err := c.service.CrearCluster(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "crear_cluster", err == nil, dto, cl)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToClusterResponse(cl))
}

func (c *implController) leerCluster(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	cl, err := c.service.LeerCluster(ctx.Request.Context(), id)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToClusterResponse(cl))
}

func (c *implController) listarClusters(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto ListarRequestDto
	_ = ctx.ShouldBindQuery(&dto)
	clusters, err := c.service.ListarClusters(ctx.Request.Context(), dto.Page, dto.PageSize)
	if responder(ctx, login, err) {
		return
	}
	resp := make([]ClusterResponseDto, 0, len(clusters))
	for _, cl := range clusters {
		resp = append(resp, ToClusterResponse(cl))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *implController) actualizarCluster(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	var dto ActualizarClusterRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	cl, err := c.service.ActualizarCluster(ctx.Request.Context(), id, dto, login.Usuario.ID)
	auditar(ctx, login, "actualizar_cluster", err == nil, dto, cl)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToClusterResponse(cl))
}

func (c *implController) desactivarCluster(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	cl, err := c.service.DesactivarCluster(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desactivar_cluster", err == nil, id, cl)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToClusterResponse(cl))
}

func (c *implController) reactivarCluster(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	cl, err := c.service.ReactivarCluster(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "reactivar_cluster", err == nil, id, cl)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToClusterResponse(cl))
}

func (c *implController) eliminarCluster(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	err = c.service.EliminarCluster(ctx.Request.Context(), id)
	auditar(ctx, login, "eliminar_cluster", err == nil, id, nil)
	if responder(ctx, login, err) {
		return
	}
	ctx.Status(http.StatusNoContent)
}

// vincular godoc
// @Summary      Vincula un servidor con una máquina
// @Tags         infraestructura
// @Accept       json
// @Produce      json
// @Param        request body VincularServidorMaquinaRequestDto true "Par servidor+máquina"
// @Success      201 {object} VinculoResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/servidores-maquinas [post]
func (c *implController) vincular(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto VincularServidorMaquinaRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	v, err := c.service.VincularServidorMaquina(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "vincular", err == nil, dto, v)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToVinculoResponse(v))
}

func (c *implController) desvincular(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	v, err := c.service.DesvincularServidorMaquina(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desvincular", err == nil, id, v)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusOK, ToVinculoResponse(v))
}

func (c *implController) listarVinculos(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	vinculos, err := c.service.ListarVinculos(ctx.Request.Context(),
		parseQueryID(ctx, "id_servidor"), parseQueryID(ctx, "id_maquina"))
	if responder(ctx, login, err) {
		return
	}
	resp := make([]VinculoResponseDto, 0, len(vinculos))
	for _, v := range vinculos {
		resp = append(resp, ToVinculoResponse(v))
	}
	ctx.JSON(http.StatusOK, resp)
}

// asignar godoc
// @Summary      Asigna un par servidor+máquina a un cluster
// @Tags         infraestructura
// @Accept       json
// @Produce      json
// @Param        request body AsignarClusterRequestDto true "Tripleta cluster+servidor+máquina"
// @Success      201 {object} AsignacionResponseDto
// @Failure      409 {object} rest_err.RestErr
// @Router       /api/asignaciones [post]
func (c *implController) asignar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	var dto AsignarClusterRequestDto
	if !leerCuerpo(ctx, login, &dto) {
		return
	}
	a, err := c.service.AsignarCluster(ctx.Request.Context(), dto, login.Usuario.ID)
	auditar(ctx, login, "asignar_cluster", err == nil, dto, a)
	if responder(ctx, login, err) {
		return
	}
	ctx.JSON(http.StatusCreated, ToAsignacionResponse(a))
}

func (c *implController) desasignar(ctx *gin.Context) {
	login, ok := sesion(ctx)
	if !ok {
		return
	}
	id, err := parseID(ctx)
	if responder(ctx, login, err) {
		return
	}
	a, err := c.service.DesasignarCluster(ctx.Request.Context(), id, login.Usuario.ID)
	auditar(ctx, login, "desasignar_cluster", err == nil, id, a)
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
	asignaciones, err := c.service.ListarAsignaciones(ctx.Request.Context(), parseQueryID(ctx, "id_cluster"))
	if responder(ctx, login, err) {
		return
	}
	resp := make([]AsignacionResponseDto, 0, len(asignaciones))
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
		Dominio:       "infraestructura",
		Accion:        accion,
		Funcion:       "infraestructura.Controller." + accion,
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
	case errors.Is(err, ErrDuplicado),
		errors.Is(err, ErrVinculoActivo),
		errors.Is(err, ErrVinculosActivos),
		errors.Is(err, ErrIntegridadReferencial):
		return rest_err.NewConflictValidationError(rayTrace, err.Error(), nil)
	case errors.Is(err, ErrReferenciaInactiva):
		return rest_err.NewUnprocessableError(rayTrace, err.Error())
	case errors.Is(err, ErrEntradaInvalida):
		return rest_err.NewBadRequestError(rayTrace, err.Error())
	}
	return rest_err.NewInternalServerError(rayTrace, "error interno al procesar la petición", nil)
}

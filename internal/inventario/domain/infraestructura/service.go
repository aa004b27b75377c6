package infraestructura

import (
	"context"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Service cubre el inventario físico y sus vínculos.
type Service interface {
	CrearDataCenter(ctx context.Context, dto CrearDataCenterRequestDto, actor uint) (DataCenter, error)
	LeerDataCenter(ctx context.Context, id uint) (DataCenter, error)
	ListarDataCenters(ctx context.Context, page, size int) ([]DataCenter, error)
	ActualizarDataCenter(ctx context.Context, id uint, dto ActualizarDataCenterRequestDto, actor uint) (DataCenter, error)
	DesactivarDataCenter(ctx context.Context, id uint, actor uint) (DataCenter, error)
	ReactivarDataCenter(ctx context.Context, id uint, actor uint) (DataCenter, error)
	EliminarDataCenter(ctx context.Context, id uint) error

	CrearHardware(ctx context.Context, dto CrearHardwareRequestDto, actor uint) (Hardware, error)
	LeerHardware(ctx context.Context, id uint) (Hardware, error)
	ListarHardware(ctx context.Context, idDataCenter uint, page, size int) ([]Hardware, error)
	ActualizarHardware(ctx context.Context, id uint, dto ActualizarHardwareRequestDto, actor uint) (Hardware, error)
	DesactivarHardware(ctx context.Context, id uint, actor uint) (Hardware, error)
	ReactivarHardware(ctx context.Context, id uint, actor uint) (Hardware, error)
	EliminarHardware(ctx context.Context, id uint) error

	CrearServidor(ctx context.Context, dto CrearServidorRequestDto, actor uint) (Servidor, error)
	LeerServidor(ctx context.Context, id uint) (Servidor, error)
	ListarServidores(ctx context.Context, idHardware uint, page, size int) ([]Servidor, error)
	ActualizarServidor(ctx context.Context, id uint, dto ActualizarServidorRequestDto, actor uint) (Servidor, error)
	DesactivarServidor(ctx context.Context, id uint, actor uint) (Servidor, error)
	ReactivarServidor(ctx context.Context, id uint, actor uint) (Servidor, error)
	EliminarServidor(ctx context.Context, id uint) error

	CrearMaquina(ctx context.Context, dto CrearMaquinaRequestDto, actor uint) (Maquina, error)
	LeerMaquina(ctx context.Context, id uint) (Maquina, error)
	ListarMaquinas(ctx context.Context, page, size int) ([]Maquina, error)
	ActualizarMaquina(ctx context.Context, id uint, dto ActualizarMaquinaRequestDto, actor uint) (Maquina, error)
	DesactivarMaquina(ctx context.Context, id uint, actor uint) (Maquina, error)
	ReactivarMaquina(ctx context.Context, id uint, actor uint) (Maquina, error)
	EliminarMaquina(ctx context.Context, id uint) error

	CrearCluster(ctx context.Context, dto CrearClusterRequestDto, actor uint) (Cluster, error)
	LeerCluster(ctx context.Context, id uint) (Cluster, error)
	ListarClusters(ctx context.Context, page, size int) ([]Cluster, error)
	ActualizarCluster(ctx context.Context, id uint, dto ActualizarClusterRequestDto, actor uint) (Cluster, error)
	DesactivarCluster(ctx context.Context, id uint, actor uint) (Cluster, error)
	ReactivarCluster(ctx context.Context, id uint, actor uint) (Cluster, error)
	EliminarCluster(ctx context.Context, id uint) error

	VincularServidorMaquina(ctx context.Context, dto VincularServidorMaquinaRequestDto, actor uint) (ServidorMaquina, error)
	DesvincularServidorMaquina(ctx context.Context, id uint, actor uint) (ServidorMaquina, error)
	ListarVinculos(ctx context.Context, idServidor, idMaquina uint) ([]ServidorMaquina, error)

	AsignarCluster(ctx context.Context, dto AsignarClusterRequestDto, actor uint) (AsignacionServidorMaquina, error)
	DesasignarCluster(ctx context.Context, id uint, actor uint) (AsignacionServidorMaquina, error)
	ListarAsignaciones(ctx context.Context, idCluster uint) ([]AsignacionServidorMaquina, error)
}

type implService struct {
	repository Repository
}

func NewService(repository Repository) Service {
	return &implService{repository: repository}
}

func normalizarPagina(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	return page, size
}

func (s *implService) CrearDataCenter(ctx context.Context, dto CrearDataCenterRequestDto, actor uint) (DataCenter, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" {
		return DataCenter{}, ErrEntradaInvalida
	}
	return s.repository.CrearDataCenter(ctx, DataCenter{
		Nombre:    nombre,
		Ubicacion: strings.TrimSpace(dto.Ubicacion),
		Registro:  inventario.NuevoRegistro(actor),
	})
}

func (s *implService) LeerDataCenter(ctx context.Context, id uint) (DataCenter, error) {
	return s.repository.LeerDataCenter(ctx, id)
}

func (s *implService) ListarDataCenters(ctx context.Context, page, size int) ([]DataCenter, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarDataCenters(ctx, page, size)
}

func (s *implService) ActualizarDataCenter(ctx context.Context, id uint, dto ActualizarDataCenterRequestDto, actor uint) (DataCenter, error) {
	d, err := s.repository.LeerDataCenter(ctx, id)
	if err != nil {
		return DataCenter{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return DataCenter{}, ErrEntradaInvalida
		}
		d.Nombre = nombre
	}
	if dto.Ubicacion != nil {
		d.Ubicacion = strings.TrimSpace(*dto.Ubicacion)
	}
	d.MarcarModificacion(actor)
	return s.repository.ActualizarDataCenter(ctx, d)
}

func (s *implService) DesactivarDataCenter(ctx context.Context, id uint, actor uint) (DataCenter, error) {
	d, err := s.repository.LeerDataCenter(ctx, id)
	if err != nil {
		return DataCenter{}, err
	}
	if d.Estado == inventario.EstadoInactivo {
		return d, nil
	}
	d.Estado = inventario.EstadoInactivo
	d.MarcarModificacion(actor)
	return s.repository.ActualizarDataCenter(ctx, d)
}

func (s *implService) ReactivarDataCenter(ctx context.Context, id uint, actor uint) (DataCenter, error) {
	d, err := s.repository.LeerDataCenter(ctx, id)
	if err != nil {
		return DataCenter{}, err
	}
	if d.Estado == inventario.EstadoActivo {
		return d, nil
	}
	d.Estado = inventario.EstadoActivo
	d.MarcarModificacion(actor)
	return s.repository.ActualizarDataCenter(ctx, d)
}

func (s *implService) EliminarDataCenter(ctx context.Context, id uint) error {
	return s.repository.EliminarDataCenter(ctx, id)
}

func (s *implService) CrearHardware(ctx context.Context, dto CrearHardwareRequestDto, actor uint) (Hardware, error) {
	serie := strings.TrimSpace(dto.Serie)
	if serie == "" || dto.IDDataCenter == 0 {
		return Hardware{}, ErrEntradaInvalida
	}
	return s.repository.CrearHardware(ctx, Hardware{
		IDDataCenter: dto.IDDataCenter,
		Marca:        strings.TrimSpace(dto.Marca),
		Modelo:       strings.TrimSpace(dto.Modelo),
		Serie:        serie,
		Registro:     inventario.NuevoRegistro(actor),
	})
}

func (s *implService) LeerHardware(ctx context.Context, id uint) (Hardware, error) {
	return s.repository.LeerHardware(ctx, id)
}

func (s *implService) ListarHardware(ctx context.Context, idDataCenter uint, page, size int) ([]Hardware, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarHardware(ctx, idDataCenter, page, size)
}

func (s *implService) ActualizarHardware(ctx context.Context, id uint, dto ActualizarHardwareRequestDto, actor uint) (Hardware, error) {
	h, err := s.repository.LeerHardware(ctx, id)
	if err != nil {
		return Hardware{}, err
	}
	if dto.Marca != nil {
		h.Marca = strings.TrimSpace(*dto.Marca)
	}
	if dto.Modelo != nil {
		h.Modelo = strings.TrimSpace(*dto.Modelo)
	}
	h.MarcarModificacion(actor)
	return s.repository.ActualizarHardware(ctx, h)
}

func (s *implService) DesactivarHardware(ctx context.Context, id uint, actor uint) (Hardware, error) {
	h, err := s.repository.LeerHardware(ctx, id)
	if err != nil {
		return Hardware{}, err
	}
	if h.Estado == inventario.EstadoInactivo {
		return h, nil
	}
	h.Estado = inventario.EstadoInactivo
	h.MarcarModificacion(actor)
	return s.repository.ActualizarHardware(ctx, h)
}

func (s *implService) ReactivarHardware(ctx context.Context, id uint, actor uint) (Hardware, error) {
	h, err := s.repository.LeerHardware(ctx, id)
	if err != nil {
		return Hardware{}, err
	}
	if h.Estado == inventario.EstadoActivo {
		return h, nil
	}
	h.Estado = inventario.EstadoActivo
	h.MarcarModificacion(actor)
	return s.repository.ActualizarHardware(ctx, h)
}

func (s *implService) EliminarHardware(ctx context.Context, id uint) error {
	return s.repository.EliminarHardware(ctx, id)
}

func (s *implService) CrearServidor(ctx context.Context, dto CrearServidorRequestDto, actor uint) (Servidor, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" || dto.IDHardware == 0 {
		return Servidor{}, ErrEntradaInvalida
	}
	return s.repository.CrearServidor(ctx, Servidor{
		IDHardware: dto.IDHardware,
		Nombre:     nombre,
		Registro:   inventario.NuevoRegistro(actor),
	})
}

func (s *implService) LeerServidor(ctx context.Context, id uint) (Servidor, error) {
	return s.repository.LeerServidor(ctx, id)
}

func (s *implService) ListarServidores(ctx context.Context, idHardware uint, page, size int) ([]Servidor, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarServidores(ctx, idHardware, page, size)
}

func (s *implService) ActualizarServidor(ctx context.Context, id uint, dto ActualizarServidorRequestDto, actor uint) (Servidor, error) {
	srv, err := s.repository.LeerServidor(ctx, id)
	if err != nil {
		return Servidor{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Servidor{}, ErrEntradaInvalida
		}
		srv.Nombre = nombre
	}
	srv.MarcarModificacion(actor)
	return s.repository.ActualizarServidor(ctx, srv)
}

// DesactivarServidor se rechaza mientras el servidor tenga vínculos o
// asignaciones de cluster activas.
func (s *implService) DesactivarServidor(ctx context.Context, id uint, actor uint) (Servidor, error) {
	srv, err := s.repository.LeerServidor(ctx, id)
	if err != nil {
		return Servidor{}, err
	}
	if srv.Estado == inventario.EstadoInactivo {
		return srv, nil
	}
	activos, err := s.repository.ContarVinculosActivosServidor(ctx, id)
	if err != nil {
		return Servidor{}, err
	}
	if activos > 0 {
		return Servidor{}, ErrVinculosActivos
	}
	srv.Estado = inventario.EstadoInactivo
	srv.MarcarModificacion(actor)
	return s.repository.ActualizarServidor(ctx, srv)
}

func (s *implService) ReactivarServidor(ctx context.Context, id uint, actor uint) (Servidor, error) {
	srv, err := s.repository.LeerServidor(ctx, id)
	if err != nil {
		return Servidor{}, err
	}
	if srv.Estado == inventario.EstadoActivo {
		return srv, nil
	}
	srv.Estado = inventario.EstadoActivo
	srv.MarcarModificacion(actor)
	return s.repository.ActualizarServidor(ctx, srv)
}

func (s *implService) EliminarServidor(ctx context.Context, id uint) error {
	return s.repository.EliminarServidor(ctx, id)
}

func (s *implService) CrearMaquina(ctx context.Context, dto CrearMaquinaRequestDto, actor uint) (Maquina, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" {
		return Maquina{}, ErrEntradaInvalida
	}
	return s.repository.CrearMaquina(ctx, Maquina{
		Nombre:           nombre,
		IP:               strings.TrimSpace(dto.IP),
		SistemaOperativo: strings.TrimSpace(dto.SistemaOperativo),
		Registro:         inventario.NuevoRegistro(actor),
	})
}

func (s *implService) LeerMaquina(ctx context.Context, id uint) (Maquina, error) {
	return s.repository.LeerMaquina(ctx, id)
}

func (s *implService) ListarMaquinas(ctx context.Context, page, size int) ([]Maquina, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarMaquinas(ctx, page, size)
}

func (s *implService) ActualizarMaquina(ctx context.Context, id uint, dto ActualizarMaquinaRequestDto, actor uint) (Maquina, error) {
	m, err := s.repository.LeerMaquina(ctx, id)
	if err != nil {
		return Maquina{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Maquina{}, ErrEntradaInvalida
		}
		m.Nombre = nombre
	}
	if dto.IP != nil {
		m.IP = strings.TrimSpace(*dto.IP)
	}
	if dto.SistemaOperativo != nil {
		m.SistemaOperativo = strings.TrimSpace(*dto.SistemaOperativo)
	}
	m.MarcarModificacion(actor)
	return s.repository.ActualizarMaquina(ctx, m)
}

// DesactivarMaquina se rechaza mientras existan vínculos, asignaciones,
// roles concedidos o despliegues activos sobre la máquina.
func (s *implService) DesactivarMaquina(ctx context.Context, id uint, actor uint) (Maquina, error) {
	m, err := s.repository.LeerMaquina(ctx, id)
	if err != nil {
		return Maquina{}, err
	}
	if m.Estado == inventario.EstadoInactivo {
		return m, nil
	}
	activos, err := s.repository.ContarVinculosActivosMaquina(ctx, id)
	if err != nil {
		return Maquina{}, err
	}
	if activos > 0 {
		return Maquina{}, ErrVinculosActivos
	}
	m.Estado = inventario.EstadoInactivo
	m.MarcarModificacion(actor)
	return s.repository.ActualizarMaquina(ctx, m)
}

func (s *implService) ReactivarMaquina(ctx context.Context, id uint, actor uint) (Maquina, error) {
	m, err := s.repository.LeerMaquina(ctx, id)
	if err != nil {
		return Maquina{}, err
	}
	if m.Estado == inventario.EstadoActivo {
		return m, nil
	}
	m.Estado = inventario.EstadoActivo
	m.MarcarModificacion(actor)
	return s.repository.ActualizarMaquina(ctx, m)
}

func (s *implService) EliminarMaquina(ctx context.Context, id uint) error {
	return s.repository.EliminarMaquina(ctx, id)
}

func (s *implService) CrearCluster(ctx context.Context, dto CrearClusterRequestDto, actor uint) (Cluster, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" {
		return Cluster{}, ErrEntradaInvalida
	}
	return s.repository.CrearCluster(ctx, Cluster{
		Nombre:      nombre,
		Descripcion: strings.TrimSpace(dto.Descripcion),
		Registro:    inventario.NuevoRegistro(actor),
	})
}

func (s *implService) LeerCluster(ctx context.Context, id uint) (Cluster, error) {
	return s.repository.LeerCluster(ctx, id)
}

func (s *implService) ListarClusters(ctx context.Context, page, size int) ([]Cluster, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarClusters(ctx, page, size)
}

func (s *implService) ActualizarCluster(ctx context.Context, id uint, dto ActualizarClusterRequestDto, actor uint) (Cluster, error) {
	cl, err := s.repository.LeerCluster(ctx, id)
	if err != nil {
		return Cluster{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Cluster{}, ErrEntradaInvalida
		}
		cl.Nombre = nombre
	}
	if dto.Descripcion != nil {
		cl.Descripcion = strings.TrimSpace(*dto.Descripcion)
	}
	cl.MarcarModificacion(actor)
	return s.repository.ActualizarCluster(ctx, cl)
}

// DesactivarCluster se rechaza mientras el cluster tenga asignaciones activas.
func (s *implService) DesactivarCluster(ctx context.Context, id uint, actor uint) (Cluster, error) {
	cl, err := s.repository.LeerCluster(ctx, id)
	if err != nil {
		return Cluster{}, err
	}
	if cl.Estado == inventario.EstadoInactivo {
		return cl, nil
	}
	activas, err := s.repository.ContarAsignacionesActivasCluster(ctx, id)
	if err != nil {
		return Cluster{}, err
	}
	if activas > 0 {
		return Cluster{}, ErrVinculosActivos
	}
	cl.Estado = inventario.EstadoInactivo
	cl.MarcarModificacion(actor)
	return s.repository.ActualizarCluster(ctx, cl)
}

func (s *implService) ReactivarCluster(ctx context.Context, id uint, actor uint) (Cluster, error) {
	cl, err := s.repository.LeerCluster(ctx, id)
	if err != nil {
		return Cluster{}, err
	}
	if cl.Estado == inventario.EstadoActivo {
		return cl, nil
	}
	cl.Estado = inventario.EstadoActivo
	cl.MarcarModificacion(actor)
	return s.repository.ActualizarCluster(ctx, cl)
}

func (s *implService) EliminarCluster(ctx context.Context, id uint) error {
	return s.repository.EliminarCluster(ctx, id)
}

func (s *implService) VincularServidorMaquina(ctx context.Context, dto VincularServidorMaquinaRequestDto, actor uint) (ServidorMaquina, error) {
	if dto.IDServidor == 0 || dto.IDMaquina == 0 {
		return ServidorMaquina{}, ErrEntradaInvalida
	}
	return s.repository.VincularServidorMaquina(ctx, ServidorMaquina{
		IDServidor: dto.IDServidor,
		IDMaquina:  dto.IDMaquina,
		Registro:   inventario.NuevoRegistro(actor),
	})
}

func (s *implService) DesvincularServidorMaquina(ctx context.Context, id uint, actor uint) (ServidorMaquina, error) {
	return s.repository.DesvincularServidorMaquina(ctx, id, actor)
}

func (s *implService) ListarVinculos(ctx context.Context, idServidor, idMaquina uint) ([]ServidorMaquina, error) {
	return s.repository.ListarVinculos(ctx, idServidor, idMaquina)
}

func (s *implService) AsignarCluster(ctx context.Context, dto AsignarClusterRequestDto, actor uint) (AsignacionServidorMaquina, error) {
	if dto.IDCluster == 0 || dto.IDServidor == 0 || dto.IDMaquina == 0 {
		return AsignacionServidorMaquina{}, ErrEntradaInvalida
	}
	return s.repository.AsignarCluster(ctx, AsignacionServidorMaquina{
		IDCluster:  dto.IDCluster,
		IDServidor: dto.IDServidor,
		IDMaquina:  dto.IDMaquina,
		Registro:   inventario.NuevoRegistro(actor),
	})
}

func (s *implService) DesasignarCluster(ctx context.Context, id uint, actor uint) (AsignacionServidorMaquina, error) {
	return s.repository.DesasignarCluster(ctx, id, actor)
}

func (s *implService) ListarAsignaciones(ctx context.Context, idCluster uint) ([]AsignacionServidorMaquina, error) {
	return s.repository.ListarAsignaciones(ctx, idCluster)
}

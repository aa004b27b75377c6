package sistema

import (
	"context"
	"log"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Service agrupa los catálogos de sistemas, sus entidades dueñas y sus
// componentes desplegables.
type Service interface {
	CrearSistema(ctx context.Context, dto CrearSistemaRequestDto, actor uint) (Sistema, error)
	LeerSistema(ctx context.Context, id uint) (Sistema, error)
	ListarSistemas(ctx context.Context, page, size int) ([]Sistema, error)
	ActualizarSistema(ctx context.Context, id uint, dto ActualizarSistemaRequestDto, actor uint) (Sistema, error)
	DesactivarSistema(ctx context.Context, id uint, actor uint) (Sistema, error)
	ReactivarSistema(ctx context.Context, id uint, actor uint) (Sistema, error)
	EliminarSistema(ctx context.Context, id uint) error

	CrearEntidad(ctx context.Context, dto CrearEntidadRequestDto, actor uint) (Entidad, error)
	LeerEntidad(ctx context.Context, id uint) (Entidad, error)
	ListarEntidades(ctx context.Context, idSistema uint, page, size int) ([]Entidad, error)
	ActualizarEntidad(ctx context.Context, id uint, dto ActualizarEntidadRequestDto, actor uint) (Entidad, error)
	DesactivarEntidad(ctx context.Context, id uint, actor uint) (Entidad, error)
	ReactivarEntidad(ctx context.Context, id uint, actor uint) (Entidad, error)
	EliminarEntidad(ctx context.Context, id uint) error

	CrearComponente(ctx context.Context, dto CrearComponenteRequestDto, actor uint) (Componente, error)
	LeerComponente(ctx context.Context, id uint) (Componente, error)
	ListarComponentes(ctx context.Context, idSistema uint, page, size int) ([]Componente, error)
	ActualizarComponente(ctx context.Context, id uint, dto ActualizarComponenteRequestDto, actor uint) (Componente, error)
	DesactivarComponente(ctx context.Context, id uint, actor uint) (Componente, error)
	ReactivarComponente(ctx context.Context, id uint, actor uint) (Componente, error)
	EliminarComponente(ctx context.Context, id uint) error
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

func (s *implService) CrearSistema(ctx context.Context, dto CrearSistemaRequestDto, actor uint) (Sistema, error) {
	codigo := strings.ToUpper(strings.TrimSpace(dto.Codigo))
	nombre := strings.TrimSpace(dto.Nombre)
	if codigo == "" || nombre == "" {
		return Sistema{}, ErrEntradaInvalida
	}
	sistema := Sistema{
		Codigo:      codigo,
		Nombre:      nombre,
		Descripcion: strings.TrimSpace(dto.Descripcion),
		Registro:    inventario.NuevoRegistro(actor),
	}
	creado, err := s.repository.CrearSistema(ctx, sistema)
	if err != nil {
		return Sistema{}, err
	}
	log.Printf("[sistema] creado id=%d codigo=%s", creado.ID, creado.Codigo)
	return creado, nil
}

func (s *implService) LeerSistema(ctx context.Context, id uint) (Sistema, error) {
	return s.repository.LeerSistema(ctx, id)
}

func (s *implService) ListarSistemas(ctx context.Context, page, size int) ([]Sistema, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarSistemas(ctx, page, size)
}

func (s *implService) ActualizarSistema(ctx context.Context, id uint, dto ActualizarSistemaRequestDto, actor uint) (Sistema, error) {
	sistema, err := s.repository.LeerSistema(ctx, id)
	if err != nil {
		return Sistema{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Sistema{}, ErrEntradaInvalida
		}
		sistema.Nombre = nombre
	}
	if dto.Descripcion != nil {
		sistema.Descripcion = strings.TrimSpace(*dto.Descripcion)
	}
	sistema.MarcarModificacion(actor)
	return s.repository.ActualizarSistema(ctx, sistema)
}

// DesactivarSistema rechaza la baja lógica mientras existan entidades,
// componentes o asignaciones de rol activos colgados del sistema. No hay
// cascada.
func (s *implService) DesactivarSistema(ctx context.Context, id uint, actor uint) (Sistema, error) {
	sistema, err := s.repository.LeerSistema(ctx, id)
	if err != nil {
		return Sistema{}, err
	}
	if sistema.Estado == inventario.EstadoInactivo {
		return sistema, nil
	}
	dependientes, err := s.repository.ContarDependientesActivosSistema(ctx, id)
	if err != nil {
		return Sistema{}, err
	}
	if dependientes > 0 {
		return Sistema{}, ErrDependientesActivos
	}
	sistema.Estado = inventario.EstadoInactivo
	sistema.MarcarModificacion(actor)
	return s.repository.ActualizarSistema(ctx, sistema)
}

func (s *implService) ReactivarSistema(ctx context.Context, id uint, actor uint) (Sistema, error) {
	sistema, err := s.repository.LeerSistema(ctx, id)
	if err != nil {
		return Sistema{}, err
	}
	if sistema.Estado == inventario.EstadoActivo {
		return sistema, nil
	}
	sistema.Estado = inventario.EstadoActivo
	sistema.MarcarModificacion(actor)
	return s.repository.ActualizarSistema(ctx, sistema)
}

func (s *implService) EliminarSistema(ctx context.Context, id uint) error {
	return s.repository.EliminarSistema(ctx, id)
}

func (s *implService) CrearEntidad(ctx context.Context, dto CrearEntidadRequestDto, actor uint) (Entidad, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" || dto.IDSistema == 0 {
		return Entidad{}, ErrEntradaInvalida
	}
	entidad := Entidad{
		IDSistema: dto.IDSistema,
		Nombre:    nombre,
		Sigla:     strings.ToUpper(strings.TrimSpace(dto.Sigla)),
		Registro:  inventario.NuevoRegistro(actor),
	}
	return s.repository.CrearEntidad(ctx, entidad)
}

func (s *implService) LeerEntidad(ctx context.Context, id uint) (Entidad, error) {
	return s.repository.LeerEntidad(ctx, id)
}

func (s *implService) ListarEntidades(ctx context.Context, idSistema uint, page, size int) ([]Entidad, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarEntidades(ctx, idSistema, page, size)
}

func (s *implService) ActualizarEntidad(ctx context.Context, id uint, dto ActualizarEntidadRequestDto, actor uint) (Entidad, error) {
	entidad, err := s.repository.LeerEntidad(ctx, id)
	if err != nil {
		return Entidad{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Entidad{}, ErrEntradaInvalida
		}
		entidad.Nombre = nombre
	}
	if dto.Sigla != nil {
		entidad.Sigla = strings.ToUpper(strings.TrimSpace(*dto.Sigla))
	}
	entidad.MarcarModificacion(actor)
	return s.repository.ActualizarEntidad(ctx, entidad)
}

func (s *implService) DesactivarEntidad(ctx context.Context, id uint, actor uint) (Entidad, error) {
	return s.cambiarEstadoEntidad(ctx, id, inventario.EstadoInactivo, actor)
}

func (s *implService) ReactivarEntidad(ctx context.Context, id uint, actor uint) (Entidad, error) {
	return s.cambiarEstadoEntidad(ctx, id, inventario.EstadoActivo, actor)
}

func (s *implService) cambiarEstadoEntidad(ctx context.Context, id uint, estado string, actor uint) (Entidad, error) {
	entidad, err := s.repository.LeerEntidad(ctx, id)
	if err != nil {
		return Entidad{}, err
	}
	if entidad.Estado == estado {
		return entidad, nil
	}
	entidad.Estado = estado
	entidad.MarcarModificacion(actor)
	return s.repository.ActualizarEntidad(ctx, entidad)
}

func (s *implService) EliminarEntidad(ctx context.Context, id uint) error {
	return s.repository.EliminarEntidad(ctx, id)
}

func (s *implService) CrearComponente(ctx context.Context, dto CrearComponenteRequestDto, actor uint) (Componente, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" || dto.IDSistema == 0 {
		return Componente{}, ErrEntradaInvalida
	}
	componente := Componente{
		IDSistema:   dto.IDSistema,
		Nombre:      nombre,
		Tecnologia:  strings.TrimSpace(dto.Tecnologia),
		Descripcion: strings.TrimSpace(dto.Descripcion),
		Registro:    inventario.NuevoRegistro(actor),
	}
	return s.repository.CrearComponente(ctx, componente)
}

func (s *implService) LeerComponente(ctx context.Context, id uint) (Componente, error) {
	return s.repository.LeerComponente(ctx, id)
}

func (s *implService) ListarComponentes(ctx context.Context, idSistema uint, page, size int) ([]Componente, error) {
	page, size = normalizarPagina(page, size)
	return s.repository.ListarComponentes(ctx, idSistema, page, size)
}

func (s *implService) ActualizarComponente(ctx context.Context, id uint, dto ActualizarComponenteRequestDto, actor uint) (Componente, error) {
	componente, err := s.repository.LeerComponente(ctx, id)
	if err != nil {
		return Componente{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Componente{}, ErrEntradaInvalida
		}
		componente.Nombre = nombre
	}
	if dto.Tecnologia != nil {
		componente.Tecnologia = strings.TrimSpace(*dto.Tecnologia)
	}
	if dto.Descripcion != nil {
		componente.Descripcion = strings.TrimSpace(*dto.Descripcion)
	}
	componente.MarcarModificacion(actor)
	return s.repository.ActualizarComponente(ctx, componente)
}

// DesactivarComponente se rechaza mientras existan despliegues activos que
// lo referencien.
func (s *implService) DesactivarComponente(ctx context.Context, id uint, actor uint) (Componente, error) {
	componente, err := s.repository.LeerComponente(ctx, id)
	if err != nil {
		return Componente{}, err
	}
	if componente.Estado == inventario.EstadoInactivo {
		return componente, nil
	}
	activos, err := s.repository.ContarDespliguesActivosComponente(ctx, id)
	if err != nil {
		return Componente{}, err
	}
	if activos > 0 {
		return Componente{}, ErrDependientesActivos
	}
	componente.Estado = inventario.EstadoInactivo
	componente.MarcarModificacion(actor)
	return s.repository.ActualizarComponente(ctx, componente)
}

func (s *implService) ReactivarComponente(ctx context.Context, id uint, actor uint) (Componente, error) {
	componente, err := s.repository.LeerComponente(ctx, id)
	if err != nil {
		return Componente{}, err
	}
	if componente.Estado == inventario.EstadoActivo {
		return componente, nil
	}
	componente.Estado = inventario.EstadoActivo
	componente.MarcarModificacion(actor)
	return s.repository.ActualizarComponente(ctx, componente)
}

func (s *implService) EliminarComponente(ctx context.Context, id uint) error {
	return s.repository.EliminarComponente(ctx, id)
}

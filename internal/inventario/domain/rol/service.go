package rol

import (
	"context"
	"log"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Service orquesta las reglas de negocio sobre roles.
type Service interface {
	Crear(ctx context.Context, dto CrearRolRequestDto, actor uint) (Rol, error)
	Leer(ctx context.Context, id uint) (Rol, error)
	Listar(ctx context.Context, page, size int) ([]Rol, error)
	Actualizar(ctx context.Context, id uint, dto ActualizarRolRequestDto, actor uint) (Rol, error)
	Desactivar(ctx context.Context, id uint, actor uint) (Rol, error)
	Reactivar(ctx context.Context, id uint, actor uint) (Rol, error)
	Eliminar(ctx context.Context, id uint) error
}

type implService struct {
	repository Repository
}

func NewService(repository Repository) Service {
	return &implService{repository: repository}
}

func (s *implService) Crear(ctx context.Context, dto CrearRolRequestDto, actor uint) (Rol, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	if nombre == "" {
		return Rol{}, ErrEntradaInvalida
	}
	rol := Rol{
		Nombre:      strings.ToUpper(nombre),
		Descripcion: strings.TrimSpace(dto.Descripcion),
		Registro:    inventario.NuevoRegistro(actor),
	}
	creado, err := s.repository.Crear(ctx, rol)
	if err != nil {
		return Rol{}, err
	}
	log.Printf("[rol] creado id=%d nombre=%s", creado.ID, creado.Nombre)
	return creado, nil
}

func (s *implService) Leer(ctx context.Context, id uint) (Rol, error) {
	return s.repository.Leer(ctx, id)
}

func (s *implService) Listar(ctx context.Context, page, size int) ([]Rol, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	return s.repository.Listar(ctx, page, size)
}

func (s *implService) Actualizar(ctx context.Context, id uint, dto ActualizarRolRequestDto, actor uint) (Rol, error) {
	rol, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Rol{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Rol{}, ErrEntradaInvalida
		}
		rol.Nombre = strings.ToUpper(nombre)
	}
	if dto.Descripcion != nil {
		rol.Descripcion = strings.TrimSpace(*dto.Descripcion)
	}
	rol.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, rol)
}

// Desactivar rechaza la baja lógica mientras el rol siga concedido en
// alguna asignación activa.
func (s *implService) Desactivar(ctx context.Context, id uint, actor uint) (Rol, error) {
	rol, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Rol{}, err
	}
	if rol.Estado == inventario.EstadoInactivo {
		return rol, nil
	}
	asignaciones, err := s.repository.ContarAsignacionesActivas(ctx, id)
	if err != nil {
		return Rol{}, err
	}
	if asignaciones > 0 {
		return Rol{}, ErrAsignacionesActivas
	}
	rol.Estado = inventario.EstadoInactivo
	rol.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, rol)
}

func (s *implService) Reactivar(ctx context.Context, id uint, actor uint) (Rol, error) {
	return s.cambiarEstado(ctx, id, inventario.EstadoActivo, actor)
}

func (s *implService) cambiarEstado(ctx context.Context, id uint, estado string, actor uint) (Rol, error) {
	rol, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Rol{}, err
	}
	if rol.Estado == estado {
		return rol, nil
	}
	rol.Estado = estado
	rol.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, rol)
}

func (s *implService) Eliminar(ctx context.Context, id uint) error {
	return s.repository.Eliminar(ctx, id)
}

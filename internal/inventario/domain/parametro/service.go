package parametro

import (
	"context"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
)

// Service administra el catálogo de parámetros y valida códigos usados por
// los dominios de operación (tipo de evento, tipo de respaldo).
type Service interface {
	Crear(ctx context.Context, dto CrearParametroRequestDto, actor uint) (Parametro, error)
	Leer(ctx context.Context, id uint) (Parametro, error)
	Listar(ctx context.Context, grupo string) ([]Parametro, error)
	Actualizar(ctx context.Context, id uint, dto ActualizarParametroRequestDto, actor uint) (Parametro, error)
	Desactivar(ctx context.Context, id uint, actor uint) (Parametro, error)
	Reactivar(ctx context.Context, id uint, actor uint) (Parametro, error)
	ValidarCodigo(ctx context.Context, grupo, codigo string) error
}

type implService struct {
	repository Repository
}

func NewService(repository Repository) Service {
	return &implService{repository: repository}
}

func (s *implService) Crear(ctx context.Context, dto CrearParametroRequestDto, actor uint) (Parametro, error) {
	grupo := strings.ToUpper(strings.TrimSpace(dto.Grupo))
	codigo := strings.ToUpper(strings.TrimSpace(dto.Codigo))
	nombre := strings.TrimSpace(dto.Nombre)
	if grupo == "" || codigo == "" || nombre == "" {
		return Parametro{}, ErrEntradaInvalida
	}
	p := Parametro{
		Grupo:       grupo,
		Codigo:      codigo,
		Nombre:      nombre,
		Descripcion: strings.TrimSpace(dto.Descripcion),
		Registro:    inventario.NuevoRegistro(actor),
	}
	return s.repository.Crear(ctx, p)
}

func (s *implService) Leer(ctx context.Context, id uint) (Parametro, error) {
	return s.repository.Leer(ctx, id)
}

func (s *implService) Listar(ctx context.Context, grupo string) ([]Parametro, error) {
	return s.repository.ListarPorGrupo(ctx, strings.ToUpper(strings.TrimSpace(grupo)))
}

func (s *implService) Actualizar(ctx context.Context, id uint, dto ActualizarParametroRequestDto, actor uint) (Parametro, error) {
	p, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Parametro{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Parametro{}, ErrEntradaInvalida
		}
		p.Nombre = nombre
	}
	if dto.Descripcion != nil {
		p.Descripcion = strings.TrimSpace(*dto.Descripcion)
	}
	p.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, p)
}

func (s *implService) Desactivar(ctx context.Context, id uint, actor uint) (Parametro, error) {
	return s.cambiarEstado(ctx, id, inventario.EstadoInactivo, actor)
}

func (s *implService) Reactivar(ctx context.Context, id uint, actor uint) (Parametro, error) {
	return s.cambiarEstado(ctx, id, inventario.EstadoActivo, actor)
}

func (s *implService) cambiarEstado(ctx context.Context, id uint, estado string, actor uint) (Parametro, error) {
	p, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Parametro{}, err
	}
	if p.Estado == estado {
		return p, nil
	}
	p.Estado = estado
	p.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, p)
}

// ValidarCodigo verifica que el código exista activo en el grupo; lo usan
// evento (TIPO_EVENTO) y despliegue (TIPO_RESPALDO) antes de escribir.
func (s *implService) ValidarCodigo(ctx context.Context, grupo, codigo string) error {
	existe, err := s.repository.ExisteCodigoActivo(ctx, grupo, strings.ToUpper(strings.TrimSpace(codigo)))
	if err != nil {
		return err
	}
	if !existe {
		return ErrCodigoNoValido
	}
	return nil
}

package despliegue

import (
	"context"
	"log"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/parametro"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/estado"
)

type Service interface {
	Crear(ctx context.Context, dto CrearDespliegueRequestDto, actor uint) (Despliegue, error)
	Leer(ctx context.Context, id uint) (Despliegue, error)
	Listar(ctx context.Context, filtro ListarDespliegueRequestDto) ([]Despliegue, error)
	Actualizar(ctx context.Context, id uint, dto ActualizarDespliegueRequestDto, actor uint) (Despliegue, error)
	// Los despliegues nunca se borran físicamente; su bitácora es el
	// rastro de auditoría.
	Desactivar(ctx context.Context, id uint, actor uint) (Despliegue, error)
	Reactivar(ctx context.Context, id uint, actor uint) (Despliegue, error)

	CambiarEstado(ctx context.Context, id uint, dto CambiarEstadoRequestDto, actor uint) (Despliegue, DespliegueBitacora, error)
	ListarBitacora(ctx context.Context, idDespliegue uint) ([]DespliegueBitacora, error)
}

type implService struct {
	repository Repository
	parametros parametro.Service
}

func NewService(repository Repository, parametros parametro.Service) Service {
	return &implService{repository: repository, parametros: parametros}
}

func (s *implService) validarTipoRespaldo(ctx context.Context, cod *string) (*string, error) {
	if cod == nil {
		return nil, nil
	}
	limpio := strings.ToUpper(strings.TrimSpace(*cod))
	if limpio == "" {
		return nil, nil
	}
	if err := s.parametros.ValidarCodigo(ctx, parametro.GrupoTipoRespaldo, limpio); err != nil {
		return nil, ErrTipoRespaldoNoValido
	}
	return &limpio, nil
}

func (s *implService) Crear(ctx context.Context, dto CrearDespliegueRequestDto, actor uint) (Despliegue, error) {
	if dto.IDComponente == 0 || dto.IDMaquina == 0 || dto.FechaSolicitud.IsZero() {
		return Despliegue{}, ErrEntradaInvalida
	}
	codRespaldo, err := s.validarTipoRespaldo(ctx, dto.CodTipoRespaldo)
	if err != nil {
		return Despliegue{}, err
	}

	flujo := estado.FlujoDespliegue()
	valores := flujo.Valores()
	if len(valores) == 0 {
		return Despliegue{}, ErrEntradaInvalida
	}

	d := Despliegue{
		IDComponente:       dto.IDComponente,
		IDMaquina:          dto.IDMaquina,
		EstadoDespliegue:   valores[0],
		FechaSolicitud:     dto.FechaSolicitud,
		UnidadSolicitante:  strings.TrimSpace(dto.UnidadSolicitante),
		Solicitante:        strings.TrimSpace(dto.Solicitante),
		CodTipoRespaldo:    codRespaldo,
		ReferenciaRespaldo: dto.ReferenciaRespaldo,
		Registro:           inventario.NuevoRegistro(actor),
	}
	creado, err := s.repository.Crear(ctx, d)
	if err != nil {
		return Despliegue{}, err
	}
	log.Printf("[despliegue] creado id=%d componente=%d maquina=%d estado=%s",
		creado.ID, creado.IDComponente, creado.IDMaquina, creado.EstadoDespliegue)
	return creado, nil
}

func (s *implService) Leer(ctx context.Context, id uint) (Despliegue, error) {
	return s.repository.Leer(ctx, id)
}

func (s *implService) Listar(ctx context.Context, filtro ListarDespliegueRequestDto) ([]Despliegue, error) {
	if filtro.Page < 1 {
		filtro.Page = 1
	}
	if filtro.PageSize < 1 || filtro.PageSize > 200 {
		filtro.PageSize = 50
	}
	filtro.Estado = strings.ToUpper(strings.TrimSpace(filtro.Estado))
	return s.repository.Listar(ctx, filtro)
}

func (s *implService) Actualizar(ctx context.Context, id uint, dto ActualizarDespliegueRequestDto, actor uint) (Despliegue, error) {
	d, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Despliegue{}, err
	}
	if dto.UnidadSolicitante != nil {
		d.UnidadSolicitante = strings.TrimSpace(*dto.UnidadSolicitante)
	}
	if dto.Solicitante != nil {
		d.Solicitante = strings.TrimSpace(*dto.Solicitante)
	}
	if dto.CodTipoRespaldo != nil {
		codRespaldo, err := s.validarTipoRespaldo(ctx, dto.CodTipoRespaldo)
		if err != nil {
			return Despliegue{}, err
		}
		d.CodTipoRespaldo = codRespaldo
	}
	if dto.ReferenciaRespaldo != nil {
		d.ReferenciaRespaldo = dto.ReferenciaRespaldo
	}
	d.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, d)
}

func (s *implService) Desactivar(ctx context.Context, id uint, actor uint) (Despliegue, error) {
	return s.repository.CambiarEstadoRegistro(ctx, id, inventario.EstadoInactivo, actor)
}

func (s *implService) Reactivar(ctx context.Context, id uint, actor uint) (Despliegue, error) {
	return s.repository.CambiarEstadoRegistro(ctx, id, inventario.EstadoActivo, actor)
}

func (s *implService) CambiarEstado(ctx context.Context, id uint, dto CambiarEstadoRequestDto, actor uint) (Despliegue, DespliegueBitacora, error) {
	nuevo := strings.ToUpper(strings.TrimSpace(dto.Estado))
	if nuevo == "" {
		return Despliegue{}, DespliegueBitacora{}, ErrEntradaInvalida
	}
	return s.repository.Transicionar(ctx, id, nuevo, actor)
}

func (s *implService) ListarBitacora(ctx context.Context, idDespliegue uint) ([]DespliegueBitacora, error) {
	return s.repository.ListarBitacora(ctx, idDespliegue)
}

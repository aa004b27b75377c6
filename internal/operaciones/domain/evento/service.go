package evento

import (
	"context"
	"fmt"
	"log"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/parametro"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/estado"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/mailer"
)

type Service interface {
	Crear(ctx context.Context, dto CrearEventoRequestDto, actor uint) (Evento, error)
	Leer(ctx context.Context, id uint) (Evento, error)
	Listar(ctx context.Context, filtro ListarEventoRequestDto) ([]Evento, error)
	Actualizar(ctx context.Context, id uint, dto ActualizarEventoRequestDto, actor uint) (Evento, error)
	// Desactivar es la única baja posible: los eventos nunca se borran
	// físicamente porque su bitácora es el rastro de auditoría.
	Desactivar(ctx context.Context, id uint, actor uint) (Evento, error)
	Reactivar(ctx context.Context, id uint, actor uint) (Evento, error)

	CambiarEstado(ctx context.Context, id uint, dto CambiarEstadoRequestDto, actor uint) (Evento, EventoBitacora, error)
	ListarBitacora(ctx context.Context, idEvento uint) ([]EventoBitacora, error)

	VincularInfra(ctx context.Context, idEvento uint, dto VincularInfraRequestDto, actor uint) (InfraAfectada, error)
	DesvincularInfra(ctx context.Context, idVinculo uint, actor uint) (InfraAfectada, error)
	ListarInfra(ctx context.Context, idEvento uint) ([]InfraAfectada, error)
}

type implService struct {
	repository Repository
	parametros parametro.Service
}

func NewService(repository Repository, parametros parametro.Service) Service {
	return &implService{repository: repository, parametros: parametros}
}

func (s *implService) Crear(ctx context.Context, dto CrearEventoRequestDto, actor uint) (Evento, error) {
	descripcion := strings.TrimSpace(dto.Descripcion)
	codTipo := strings.ToUpper(strings.TrimSpace(dto.CodTipoEvento))
	if descripcion == "" || codTipo == "" || dto.FechaEvento.IsZero() {
		return Evento{}, ErrEntradaInvalida
	}
	if err := s.parametros.ValidarCodigo(ctx, parametro.GrupoTipoEvento, codTipo); err != nil {
		return Evento{}, ErrTipoEventoNoValido
	}

	flujo := estado.FlujoEvento()
	valores := flujo.Valores()
	if len(valores) == 0 {
		return Evento{}, ErrEstadoNoPermitido
	}

	e := Evento{
		CodTipoEvento: codTipo,
		Descripcion:   descripcion,
		FechaEvento:   dto.FechaEvento,
		Responsables:  normalizarResponsables(dto.Responsables),
		EstadoEvento:  valores[0],
		Respaldo:      dto.Respaldo,
		Registro:      inventario.NuevoRegistro(actor),
	}
	creado, err := s.repository.Crear(ctx, e)
	if err != nil {
		return Evento{}, err
	}
	log.Printf("[evento] creado id=%d tipo=%s estado=%s", creado.ID, creado.CodTipoEvento, creado.EstadoEvento)
	s.notificarResponsables(creado)
	return creado, nil
}

// notificarResponsables envía el aviso de apertura por correo en segundo
// plano; el alta del evento nunca falla por un problema del SMTP.
func (s *implService) notificarResponsables(e Evento) {
	svc := mailer.Use()
	if svc == nil || e.Responsables == "" {
		return
	}
	destinatarios := strings.Split(e.Responsables, ",")
	asunto := fmt.Sprintf("[SistemaInfra] Evento %s #%d registrado", e.CodTipoEvento, e.ID)
	cuerpo := fmt.Sprintf(
		"Se registró el evento #%d (%s) con fecha %s.\n\nDescripción:\n%s\n",
		e.ID, e.CodTipoEvento, e.FechaEvento.Format("2006-01-02 15:04"), e.Descripcion,
	)
	go func() {
		for _, destino := range destinatarios {
			destino = strings.TrimSpace(destino)
			if destino == "" {
				continue
			}
			if err := svc.SendRaw(destino, asunto, cuerpo); err != nil {
				log.Printf("[evento] falla al notificar a %s: %v", destino, err)
			}
		}
	}()
}

func normalizarResponsables(responsables []string) string {
	limpios := make([]string, 0, len(responsables))
	for _, r := range responsables {
		r = strings.TrimSpace(strings.ToLower(r))
		if r != "" {
			limpios = append(limpios, r)
		}
	}
	return strings.Join(limpios, ",")
}

func (s *implService) Leer(ctx context.Context, id uint) (Evento, error) {
	return s.repository.Leer(ctx, id)
}

func (s *implService) Listar(ctx context.Context, filtro ListarEventoRequestDto) ([]Evento, error) {
	if filtro.Page < 1 {
		filtro.Page = 1
	}
	if filtro.PageSize < 1 || filtro.PageSize > 200 {
		filtro.PageSize = 50
	}
	filtro.Estado = strings.ToUpper(strings.TrimSpace(filtro.Estado))
	filtro.Tipo = strings.ToUpper(strings.TrimSpace(filtro.Tipo))
	return s.repository.Listar(ctx, filtro)
}

func (s *implService) Actualizar(ctx context.Context, id uint, dto ActualizarEventoRequestDto, actor uint) (Evento, error) {
	e, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Evento{}, err
	}
	if dto.Descripcion != nil {
		descripcion := strings.TrimSpace(*dto.Descripcion)
		if descripcion == "" {
			return Evento{}, ErrEntradaInvalida
		}
		e.Descripcion = descripcion
	}
	if dto.Responsables != nil {
		e.Responsables = normalizarResponsables(*dto.Responsables)
	}
	if dto.Respaldo != nil {
		e.Respaldo = dto.Respaldo
	}
	e.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, e)
}

func (s *implService) Desactivar(ctx context.Context, id uint, actor uint) (Evento, error) {
	return s.repository.CambiarEstadoRegistro(ctx, id, inventario.EstadoInactivo, actor)
}

func (s *implService) Reactivar(ctx context.Context, id uint, actor uint) (Evento, error) {
	return s.repository.CambiarEstadoRegistro(ctx, id, inventario.EstadoActivo, actor)
}

func (s *implService) CambiarEstado(ctx context.Context, id uint, dto CambiarEstadoRequestDto, actor uint) (Evento, EventoBitacora, error) {
	nuevo := strings.ToUpper(strings.TrimSpace(dto.Estado))
	if nuevo == "" {
		return Evento{}, EventoBitacora{}, ErrEntradaInvalida
	}
	return s.repository.Transicionar(ctx, id, nuevo, actor)
}

func (s *implService) ListarBitacora(ctx context.Context, idEvento uint) ([]EventoBitacora, error) {
	return s.repository.ListarBitacora(ctx, idEvento)
}

func (s *implService) VincularInfra(ctx context.Context, idEvento uint, dto VincularInfraRequestDto, actor uint) (InfraAfectada, error) {
	v := InfraAfectada{
		IDEvento:     idEvento,
		IDDataCenter: dto.IDDataCenter,
		IDHardware:   dto.IDHardware,
		IDServidor:   dto.IDServidor,
		IDMaquina:    dto.IDMaquina,
		Registro:     inventario.NuevoRegistro(actor),
	}
	return s.repository.VincularInfra(ctx, v)
}

func (s *implService) DesvincularInfra(ctx context.Context, idVinculo uint, actor uint) (InfraAfectada, error) {
	return s.repository.DesvincularInfra(ctx, idVinculo, actor)
}

func (s *implService) ListarInfra(ctx context.Context, idEvento uint) ([]InfraAfectada, error) {
	return s.repository.ListarInfra(ctx, idEvento)
}

package usuario

import (
	"context"
	"log"
	"strings"

	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/util"
)

type Service interface {
	Crear(ctx context.Context, dto CrearUsuarioRequestDto, actor uint) (Usuario, error)
	Leer(ctx context.Context, id uint) (Usuario, error)
	LeerPorNombreUsuario(ctx context.Context, nombreUsuario string) (Usuario, error)
	LeerPorCorreo(ctx context.Context, correo string) (Usuario, error)
	Listar(ctx context.Context, page, size int) ([]Usuario, error)
	Actualizar(ctx context.Context, id uint, dto ActualizarUsuarioRequestDto, actor uint) (Usuario, error)
	Desactivar(ctx context.Context, id uint, actor uint) (Usuario, error)
	Reactivar(ctx context.Context, id uint, actor uint) (Usuario, error)
	Eliminar(ctx context.Context, id uint) error
	CambiarContrasena(ctx context.Context, id uint, nueva string) error

	AsignarRol(ctx context.Context, idUsuario uint, dto AsignarRolRequestDto, actor uint) (UsuarioRol, error)
	RevocarRol(ctx context.Context, idAsignacion uint, actor uint) (UsuarioRol, error)
	ListarAsignaciones(ctx context.Context, idUsuario uint) ([]UsuarioRol, error)
}

type implService struct {
	repository Repository
}

func NewService(repository Repository) Service {
	return &implService{repository: repository}
}

func (s *implService) Crear(ctx context.Context, dto CrearUsuarioRequestDto, actor uint) (Usuario, error) {
	nombre := strings.TrimSpace(dto.Nombre)
	nombreUsuario := strings.ToLower(strings.TrimSpace(dto.NombreUsuario))
	correo := strings.ToLower(strings.TrimSpace(dto.Correo))
	if nombre == "" || nombreUsuario == "" || correo == "" || len(dto.Contrasena) < 8 {
		return Usuario{}, ErrEntradaInvalida
	}
	hash, err := util.UsePassword().Hash(dto.Contrasena)
	if err != nil {
		return Usuario{}, err
	}
	u := Usuario{
		Nombre:        nombre,
		NombreUsuario: nombreUsuario,
		Correo:        correo,
		Contrasena:    hash,
		Registro:      inventario.NuevoRegistro(actor),
	}
	creado, err := s.repository.Crear(ctx, u)
	if err != nil {
		return Usuario{}, err
	}
	log.Printf("[usuario] creado id=%d nombre_usuario=%s", creado.ID, creado.NombreUsuario)
	return creado, nil
}

func (s *implService) Leer(ctx context.Context, id uint) (Usuario, error) {
	return s.repository.Leer(ctx, id)
}

func (s *implService) LeerPorNombreUsuario(ctx context.Context, nombreUsuario string) (Usuario, error) {
	return s.repository.LeerPorNombreUsuario(ctx, strings.ToLower(strings.TrimSpace(nombreUsuario)))
}

func (s *implService) LeerPorCorreo(ctx context.Context, correo string) (Usuario, error) {
	return s.repository.LeerPorCorreo(ctx, strings.ToLower(strings.TrimSpace(correo)))
}

func (s *implService) Listar(ctx context.Context, page, size int) ([]Usuario, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	return s.repository.Listar(ctx, page, size)
}

func (s *implService) Actualizar(ctx context.Context, id uint, dto ActualizarUsuarioRequestDto, actor uint) (Usuario, error) {
	u, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Usuario{}, err
	}
	if dto.Nombre != nil {
		nombre := strings.TrimSpace(*dto.Nombre)
		if nombre == "" {
			return Usuario{}, ErrEntradaInvalida
		}
		u.Nombre = nombre
	}
	if dto.Correo != nil {
		correo := strings.ToLower(strings.TrimSpace(*dto.Correo))
		if correo == "" {
			return Usuario{}, ErrEntradaInvalida
		}
		u.Correo = correo
	}
	u.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, u)
}

// Desactivar rechaza la baja lógica mientras el usuario conserve
// asignaciones de rol activas: primero hay que revocarlas.
func (s *implService) Desactivar(ctx context.Context, id uint, actor uint) (Usuario, error) {
	u, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Usuario{}, err
	}
	if u.Estado == inventario.EstadoInactivo {
		return u, nil
	}
	roles, err := s.repository.ContarRolesActivos(ctx, id)
	if err != nil {
		return Usuario{}, err
	}
	if roles > 0 {
		return Usuario{}, ErrRolesActivos
	}
	u.Estado = inventario.EstadoInactivo
	u.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, u)
}

func (s *implService) Reactivar(ctx context.Context, id uint, actor uint) (Usuario, error) {
	return s.cambiarEstado(ctx, id, inventario.EstadoActivo, actor)
}

func (s *implService) cambiarEstado(ctx context.Context, id uint, estado string, actor uint) (Usuario, error) {
	u, err := s.repository.Leer(ctx, id)
	if err != nil {
		return Usuario{}, err
	}
	if u.Estado == estado {
		return u, nil
	}
	u.Estado = estado
	u.MarcarModificacion(actor)
	return s.repository.Actualizar(ctx, u)
}

func (s *implService) Eliminar(ctx context.Context, id uint) error {
	return s.repository.Eliminar(ctx, id)
}

func (s *implService) CambiarContrasena(ctx context.Context, id uint, nueva string) error {
	if len(nueva) < 8 {
		return ErrEntradaInvalida
	}
	hash, err := util.UsePassword().Hash(nueva)
	if err != nil {
		return err
	}
	return s.repository.ActualizarContrasena(ctx, id, hash)
}

func (s *implService) AsignarRol(ctx context.Context, idUsuario uint, dto AsignarRolRequestDto, actor uint) (UsuarioRol, error) {
	if idUsuario == 0 || dto.IDRol == 0 || dto.IDMaquina == 0 || dto.IDSistema == 0 {
		return UsuarioRol{}, ErrEntradaInvalida
	}
	a := UsuarioRol{
		IDUsuario: idUsuario,
		IDRol:     dto.IDRol,
		IDMaquina: dto.IDMaquina,
		IDSistema: dto.IDSistema,
		Registro:  inventario.NuevoRegistro(actor),
	}
	return s.repository.AsignarRol(ctx, a)
}

func (s *implService) RevocarRol(ctx context.Context, idAsignacion uint, actor uint) (UsuarioRol, error) {
	return s.repository.RevocarRol(ctx, idAsignacion, actor)
}

func (s *implService) ListarAsignaciones(ctx context.Context, idUsuario uint) ([]UsuarioRol, error) {
	return s.repository.ListarAsignaciones(ctx, idUsuario)
}

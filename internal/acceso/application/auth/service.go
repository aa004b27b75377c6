package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/application/auth/cache"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/infra/jwt"
	inventario "github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/model"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/inventario/domain/usuario"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/mailer"
	"github.com/Americo7/SistemaInfra-2-sub002/internal/pkg/util"
)

// Sesion agrupa el usuario autenticado, sus roles y el token emitido.
type Sesion struct {
	Usuario usuario.Usuario
	Roles   []string
	Token   AccessToken
}

type Service interface {
	// Login acepta el nombre de usuario o el correo como identificador.
	Login(ctx context.Context, identificador, contrasena string) (Sesion, error)
	RevocarAccessToken(ctx context.Context, token string) error
	LeerAccessToken(ctx context.Context, token string) (AccessToken, error)
	CrearOTP(ctx context.Context, correo string) error
	ValidarOTP(correo, codigo string) bool
	CambiarContrasenaConOTP(ctx context.Context, correo, codigo, nueva string) error
}

type implService struct {
	repository Repository
	usuarios   usuario.Service
	roles      RolesResolver
}

// RolesResolver entrega los nombres de rol activos de un usuario; lo provee
// el módulo de usuarios para no duplicar la consulta aquí.
type RolesResolver func(ctx context.Context, idUsuario uint) ([]string, error)

func NewService(repository Repository, usuarios usuario.Service, roles RolesResolver) Service {
	return &implService{repository: repository, usuarios: usuarios, roles: roles}
}

func (s *implService) buscarUsuario(ctx context.Context, identificador string) (usuario.Usuario, error) {
	identificador = strings.ToLower(strings.TrimSpace(identificador))
	if strings.Contains(identificador, "@") {
		return s.usuarios.LeerPorCorreo(ctx, identificador)
	}
	return s.usuarios.LeerPorNombreUsuario(ctx, identificador)
}

func (s *implService) Login(ctx context.Context, identificador, contrasena string) (Sesion, error) {
	u, err := s.buscarUsuario(ctx, identificador)
	if err != nil {
		return Sesion{}, ErrCredenciales
	}
	if u.Estado != inventario.EstadoActivo {
		return Sesion{}, ErrCredenciales
	}
	if err := util.UsePassword().Compare(u.Contrasena, contrasena); err != nil {
		return Sesion{}, ErrCredenciales
	}

	token, expiracion, err := jwt.Use().GenerateAccessToken(u.ID)
	if err != nil {
		return Sesion{}, err
	}

	// Sesión única: cualquier token vigente anterior queda revocado.
	_ = s.repository.RevocarTokensDeUsuario(ctx, u.ID)

	emitido, err := s.repository.CrearAccessToken(ctx, AccessToken{
		IDUsuario:     u.ID,
		Token:         token,
		Expiracion:    expiracion,
		FechaCreacion: time.Now().UTC(),
	})
	if err != nil {
		return Sesion{}, err
	}

	roles, err := s.roles(ctx, u.ID)
	if err != nil {
		return Sesion{}, err
	}

	return Sesion{Usuario: u, Roles: roles, Token: emitido}, nil
}

func (s *implService) RevocarAccessToken(ctx context.Context, token string) error {
	return s.repository.RevocarAccessToken(ctx, token)
}

func (s *implService) LeerAccessToken(ctx context.Context, token string) (AccessToken, error) {
	return s.repository.LeerAccessToken(ctx, token)
}

func (s *implService) CrearOTP(ctx context.Context, correo string) error {
	correo = strings.ToLower(strings.TrimSpace(correo))
	if _, err := s.usuarios.LeerPorCorreo(ctx, correo); err != nil {
		return err
	}
	if _, found := cache.GetOTP(correo); found {
		return ErrOTPExiste
	}
	codigo, err := GenerarOTP(6)
	if err != nil {
		return err
	}
	servicioCorreo := mailer.Use()
	if servicioCorreo == nil {
		return mailer.ErrMailerNotInitialized
	}
	cache.SaveOTP(correo, codigo)
	return servicioCorreo.SendRaw(
		correo,
		"Código de verificación",
		fmt.Sprintf("<p>Su código de verificación es: <strong>%s</strong></p>", codigo),
	)
}

func (s *implService) ValidarOTP(correo, codigo string) bool {
	vigente, found := cache.GetOTP(strings.ToLower(strings.TrimSpace(correo)))
	return found && vigente == codigo
}

func (s *implService) CambiarContrasenaConOTP(ctx context.Context, correo, codigo, nueva string) error {
	correo = strings.ToLower(strings.TrimSpace(correo))
	if !s.ValidarOTP(correo, codigo) {
		return ErrOTPInvalido
	}
	u, err := s.usuarios.LeerPorCorreo(ctx, correo)
	if err != nil {
		return err
	}
	if err := s.usuarios.CambiarContrasena(ctx, u.ID, nueva); err != nil {
		return err
	}
	cache.DeleteOTP(correo)
	// Las sesiones abiertas dejan de valer con la contraseña anterior.
	return s.repository.RevocarTokensDeUsuario(ctx, u.ID)
}

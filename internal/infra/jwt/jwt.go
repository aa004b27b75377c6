package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var singleton *TokenGenerator

type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

type TokenGenerator struct {
	accessSecretKey []byte
	issuer          string
	accessExpiry    time.Duration
}

type Config struct {
	AccessSecret string
	Issuer       string
	AccessExpiry time.Duration
}

// Init inicializa el singleton; debe llamarse una sola vez en el arranque.
func Init(cfg Config) error {
	if cfg.AccessSecret == "" {
		return fmt.Errorf("el secreto JWT no puede estar vacío")
	}
	if cfg.Issuer == "" {
		return fmt.Errorf("el emisor (issuer) JWT no puede estar vacío")
	}
	if cfg.AccessExpiry <= 0 {
		return fmt.Errorf("la expiración del token debe ser positiva")
	}

	singleton = &TokenGenerator{
		accessSecretKey: []byte(cfg.AccessSecret),
		issuer:          cfg.Issuer,
		accessExpiry:    cfg.AccessExpiry,
	}

	return nil
}

// Use devuelve la instancia global.
func Use() *TokenGenerator {
	if singleton == nil {
		panic("el paquete JWT no fue inicializado. Llame a jwt.Init(cfg) en el arranque.")
	}
	return singleton
}

// GenerateAccessToken emite un token de acceso para el usuario dado y
// devuelve también su fecha de expiración.
func (g *TokenGenerator) GenerateAccessToken(idUsuario uint) (string, time.Time, error) {
	expiry := time.Now().UTC().Add(g.accessExpiry)
	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(idUsuario), 10),
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.accessSecretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("falla al firmar el token: %w", err)
	}
	return signed, expiry, nil
}

// ParseAccessToken valida la firma y expiración y devuelve el id de usuario.
func (g *TokenGenerator) ParseAccessToken(tokenStr string) (uint, error) {
	var claims AccessTokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return g.accessSecretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("token inválido: %w", err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject del token inválido: %w", err)
	}
	return uint(id), nil
}

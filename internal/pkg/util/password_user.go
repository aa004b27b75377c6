package util

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// Parámetros de Argon2
const (
	saltLength  = 16
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 2
	keyLength   = 32
)

// Password define el contrato para generar y comparar hashes de contraseña.
type Password interface {
	Hash(password string) (string, error)
	Compare(encodedHash, password string) error
}

type argon2Password struct{}

var (
	passwordInstance Password
	once             sync.Once
)

// UsePassword devuelve la instancia única de la interfaz Password.
func UsePassword() Password {
	once.Do(func() {
		passwordInstance = &argon2Password{}
	})
	return passwordInstance
}

// Hash genera un hash Argon2id a partir de la contraseña.
func (p *argon2Password) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("falla al generar la sal: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// Compare verifica si la contraseña corresponde al hash Argon2id dado.
func (p *argon2Password) Compare(encodedHash, password string) error {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return errors.New("formato de hash inválido")
	}

	var mem uint32
	var iter uint32
	var par uint8

	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par)
	if err != nil {
		return fmt.Errorf("falla al interpretar los parámetros del hash: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("falla al decodificar la sal: %w", err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("falla al decodificar el hash: %w", err)
	}

	computedHash := argon2.IDKey([]byte(password), salt, iter, mem, par, uint32(len(expectedHash)))

	if !constantTimeCompare(expectedHash, computedHash) {
		return errors.New("contraseña inválida")
	}

	return nil
}

// constantTimeCompare compara en tiempo constante para evitar ataques de timing.
func constantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}
	return result == 0
}

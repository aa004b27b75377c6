package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerarOTP produce un código numérico de n dígitos con crypto/rand.
func GenerarOTP(n int) (string, error) {
	digitos := make([]byte, n)
	for i := range digitos {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("falla al generar OTP: %w", err)
		}
		digitos[i] = byte('0' + v.Int64())
	}
	return string(digitos), nil
}

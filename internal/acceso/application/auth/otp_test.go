package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Americo7/SistemaInfra-2-sub002/internal/acceso/application/auth/cache"
)

func TestGenerarOTPLongitudYDigitos(t *testing.T) {
	codigo, err := GenerarOTP(6)
	require.NoError(t, err)
	require.Len(t, codigo, 6)
	for _, c := range codigo {
		assert.True(t, c >= '0' && c <= '9', "el OTP solo contiene dígitos")
	}
}

func TestCacheOTPGuardaYElimina(t *testing.T) {
	cache.SaveOTP("prueba@example.com", "123456")

	v, found := cache.GetOTP("prueba@example.com")
	require.True(t, found)
	assert.Equal(t, "123456", v)

	cache.DeleteOTP("prueba@example.com")
	_, found = cache.GetOTP("prueba@example.com")
	assert.False(t, found)
}

package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Los OTP viven cinco minutos; la limpieza corre sola cada diez.
var otpCache = cache.New(5*time.Minute, 10*time.Minute)

func SaveOTP(correo, codigo string) {
	otpCache.Set(correo, codigo, cache.DefaultExpiration)
}

func GetOTP(correo string) (string, bool) {
	v, found := otpCache.Get(correo)
	if !found {
		return "", false
	}
	return v.(string), true
}

func DeleteOTP(correo string) {
	otpCache.Delete(correo)
}

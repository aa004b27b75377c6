package auth

type LoginRequest struct {
	Usuario    string `json:"usuario" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required"`
}

type OTPRequest struct {
	Correo string `json:"correo" binding:"required,email"`
}

type OTPResetPasswordRequest struct {
	Correo     string `json:"correo" binding:"required,email"`
	OTP        string `json:"otp" binding:"required"`
	Contrasena string `json:"contrasena" binding:"required,min=8"`
}

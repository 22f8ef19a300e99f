package dto

import "time"

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	CompanyID string `json:"empresa_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"nombre"`
	Role      string `json:"rol"`
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"empresa_id"`
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	Role      string    `json:"rol"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}

// LoginResponse token más datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

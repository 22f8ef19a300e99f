package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Roles válidos para User.
const (
	RoleAdministrador = "ADMINISTRADOR"
	RoleExterno       = "EXTERNO"
)

// Permisos que puede ejercer un usuario EXTERNO. Los administradores tienen
// todos los permisos.
var externalPermissions = map[string]bool{
	"ver_productos":        true,
	"ver_inventario":       true,
	"registrar_movimiento": true,
}

// User representa un usuario del sistema (pertenece a una Company).
// La política de autorización completa vive fuera del núcleo; aquí solo se
// modela la existencia del usuario y un chequeo básico de permisos.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt, nunca texto plano después de persistir
	Name         string
	Role         string // ADMINISTRADOR, EXTERNO
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser construye un usuario activo y valida.
func NewUser(id, companyID, email, passwordHash, name, role string) (*User, error) {
	now := time.Now()
	u := &User{
		ID:           id,
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate aplica las reglas de negocio de User.
func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Name)) < 3 {
		return domain.NewInvalidData("nombre", "el nombre debe tener al menos 3 caracteres")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return domain.NewInvalidData("email", "el email debe ser válido")
	}
	if u.PasswordHash == "" {
		return domain.NewInvalidData("password", "la contraseña es obligatoria")
	}
	if u.Role != RoleAdministrador && u.Role != RoleExterno {
		return domain.NewInvalidData("rol", "rol inválido")
	}
	return nil
}

// IsAdmin indica si el usuario es administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdministrador }

// HasPermission chequeo básico: admin tiene todo; externo un conjunto fijo.
func (u *User) HasPermission(permission string) bool {
	if u.IsAdmin() {
		return true
	}
	return externalPermissions[permission]
}

// IsActive indica si el usuario está activo.
func (u *User) IsActive() bool { return u.Status == StatusActive }

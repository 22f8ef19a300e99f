package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Estados de ciclo de vida compartidos por las entidades con soft delete.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Company representa una organización/tenant del sistema. El NIT es la llave
// de negocio única; la desactivación es soft mientras la empresa tenga
// productos asociados.
type Company struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano, con o sin dígito de verificación
	Address   string
	Phone     string
	Email     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCompany construye una empresa activa y ejecuta la validación completa.
func NewCompany(id, name, nit, address, phone, email string) (*Company, error) {
	now := time.Now()
	c := &Company{
		ID:        id,
		Name:      name,
		NIT:       nit,
		Address:   address,
		Phone:     phone,
		Email:     email,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate aplica las reglas de negocio de Company. Se ejecuta al construir
// y después de cada mutación; una empresa nunca queda en estado inválido.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewInvalidData("nombre", "el nombre de la empresa es obligatorio")
	}
	if len(c.Name) < 3 {
		return domain.NewInvalidData("nombre", "el nombre de la empresa debe tener al menos 3 caracteres")
	}
	if strings.TrimSpace(c.NIT) == "" {
		return domain.NewInvalidData("nit", "el NIT es obligatorio")
	}
	if !validNITFormat(c.NIT) {
		return domain.NewInvalidData("nit", "el formato del NIT no es válido")
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return domain.NewInvalidData("email", "el email no es válido")
	}
	if len(c.Phone) < 7 {
		return domain.NewInvalidData("telefono", "el teléfono debe tener al menos 7 dígitos")
	}
	return nil
}

// validNITFormat valida el formato del NIT: 9 a 10 dígitos después de
// eliminar guiones y espacios.
func validNITFormat(nit string) bool {
	clean := strings.NewReplacer("-", "", " ", "").Replace(nit)
	if len(clean) < 9 || len(clean) > 10 {
		return false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UpdateInfo actualiza solo los campos proporcionados y re-valida.
func (c *Company) UpdateInfo(name, address, phone, email *string) error {
	if name != nil {
		c.Name = *name
	}
	if address != nil {
		c.Address = *address
	}
	if phone != nil {
		c.Phone = *phone
	}
	if email != nil {
		c.Email = *email
	}
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Activate reactiva la empresa.
func (c *Company) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate desactiva la empresa (soft delete).
func (c *Company) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// IsActive indica si la empresa está activa.
func (c *Company) IsActive() bool { return c.Status == StatusActive }

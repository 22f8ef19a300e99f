package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func newCompany(t *testing.T) *entity.Company {
	t.Helper()
	c, err := entity.NewCompany("emp-1", "Distribuciones Andinas", "900123456-7", "Cra 7 # 12-34", "6015551234", "contacto@andinas.co")
	require.NoError(t, err)
	return c
}

func TestNewCompany_Valida(t *testing.T) {
	c := newCompany(t)
	assert.True(t, c.IsActive())
}

func TestNewCompany_NITFormatos(t *testing.T) {
	valid := []string{"900123456", "900123456-7", "900 123 456 7"}
	for _, nit := range valid {
		_, err := entity.NewCompany("emp-1", "Empresa Valida", nit, "", "6015551234", "a@b.co")
		assert.NoError(t, err, "NIT %q debe ser válido", nit)
	}

	invalid := []string{"", "12345678", "12345678901", "90012345A"}
	for _, nit := range invalid {
		_, err := entity.NewCompany("emp-1", "Empresa Valida", nit, "", "6015551234", "a@b.co")
		require.Error(t, err, "NIT %q debe ser inválido", nit)
		assert.Equal(t, domain.CodeInvalidData, domain.CodeOf(err))
	}
}

func TestNewCompany_EmailYTelefono(t *testing.T) {
	_, err := entity.NewCompany("emp-1", "Empresa Valida", "900123456", "", "6015551234", "sin-arroba")
	assert.Error(t, err, "email sin @")

	_, err = entity.NewCompany("emp-1", "Empresa Valida", "900123456", "", "123", "a@b.co")
	assert.Error(t, err, "teléfono corto")
}

func TestCompany_UpdateInfo_Revalida(t *testing.T) {
	c := newCompany(t)
	bad := "sin-arroba"
	err := c.UpdateInfo(nil, nil, nil, &bad)
	require.Error(t, err)
}

func TestCompany_UpdateInfo_Parcial(t *testing.T) {
	c := newCompany(t)
	name := "Distribuciones del Pacífico"
	require.NoError(t, c.UpdateInfo(&name, nil, nil, nil))
	assert.Equal(t, "Distribuciones del Pacífico", c.Name)
	assert.Equal(t, "900123456-7", c.NIT, "el NIT no cambia en UpdateInfo")
}

func TestCompany_Deactivate(t *testing.T) {
	c := newCompany(t)
	c.Deactivate()
	assert.False(t, c.IsActive())
	c.Activate()
	assert.True(t, c.IsActive())
}

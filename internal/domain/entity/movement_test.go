package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestParseMovementType_NormalizaMayusculasYEspacios(t *testing.T) {
	got, err := entity.ParseMovementType("  entrada ")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntrada, got)
}

func TestParseMovementType_TipoDesconocido(t *testing.T) {
	_, err := entity.ParseMovementType("PRESTAMO")
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidMovementType, domain.CodeOf(err))
}

func TestNewMovement_CantidadCeroSoloValidaEnAjuste(t *testing.T) {
	// AJUSTE con cantidad 0 = conteo físico en cero, válido.
	_, err := entity.NewMovement("mov-1", entity.MovementTypeAjuste, "prod-1", 0, "emp-1", "user-1", "")
	assert.NoError(t, err)

	// En cualquier otro tipo, cero es inválido.
	_, err = entity.NewMovement("mov-2", entity.MovementTypeEntrada, "prod-1", 0, "emp-1", "user-1", "")
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidData, domain.CodeOf(err))
}

func TestNewMovement_AjusteNegativo_Rechazado(t *testing.T) {
	_, err := entity.NewMovement("mov-1", entity.MovementTypeAjuste, "prod-1", -5, "emp-1", "user-1", "")
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidData, domain.CodeOf(err))
}

func TestNewMovement_IDsObligatorios(t *testing.T) {
	_, err := entity.NewMovement("mov-1", entity.MovementTypeEntrada, "", 5, "emp-1", "user-1", "")
	assert.Error(t, err, "producto requerido")

	_, err = entity.NewMovement("mov-1", entity.MovementTypeEntrada, "prod-1", 5, "", "user-1", "")
	assert.Error(t, err, "empresa requerida")

	_, err = entity.NewMovement("mov-1", entity.MovementTypeEntrada, "prod-1", 5, "emp-1", "", "")
	assert.Error(t, err, "usuario requerido")
}

func TestMovement_Clasificacion(t *testing.T) {
	cases := []struct {
		movType string
		entry   bool
		exit    bool
		adjust  bool
	}{
		{entity.MovementTypeEntrada, true, false, false},
		{entity.MovementTypeDevolucion, true, false, false},
		{entity.MovementTypeSalida, false, true, false},
		{entity.MovementTypeTransferencia, false, true, false},
		{entity.MovementTypeAjuste, false, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.movType, func(t *testing.T) {
			m, err := entity.NewMovement("mov-1", tc.movType, "prod-1", 5, "emp-1", "user-1", "")
			require.NoError(t, err)
			assert.Equal(t, tc.entry, m.IsEntry())
			assert.Equal(t, tc.exit, m.IsExit())
			assert.Equal(t, tc.adjust, m.IsAdjustment())
		})
	}
}

func TestMovement_StockImpact(t *testing.T) {
	entrada, _ := entity.NewMovement("m1", entity.MovementTypeEntrada, "prod-1", 5, "emp-1", "user-1", "")
	salida, _ := entity.NewMovement("m2", entity.MovementTypeSalida, "prod-1", 5, "emp-1", "user-1", "")
	ajuste, _ := entity.NewMovement("m3", entity.MovementTypeAjuste, "prod-1", 5, "emp-1", "user-1", "")

	assert.Equal(t, 5, entrada.StockImpact())
	assert.Equal(t, -5, salida.StockImpact())
	assert.Equal(t, 0, ajuste.StockImpact(), "un ajuste no es un delta")
}

func TestMovement_RecortaNotas(t *testing.T) {
	m, err := entity.NewMovement("m1", entity.MovementTypeEntrada, "prod-1", 5, "emp-1", "user-1", "  compra mensual  ")
	require.NoError(t, err)
	assert.Equal(t, "compra mensual", m.Notes)
}

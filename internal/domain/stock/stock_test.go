package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/stock"
)

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		movementType string
		direction    string
	}{
		{entity.MovementTypeIn, stock.DirectionIn},
		{entity.MovementTypeProduction, stock.DirectionIn},
		{entity.MovementTypeOut, stock.DirectionOut},
		{entity.MovementTypeConsumption, stock.DirectionOut},
	}
	for _, tc := range cases {
		direction, err := stock.NormalizeType(tc.movementType)
		assert.NoError(t, err, tc.movementType)
		assert.Equal(t, tc.direction, direction)
	}
}

func TestNormalizeType_EtiquetaDesconocida(t *testing.T) {
	for _, bad := range []string{"", "IN", "entrada", "transfer"} {
		_, err := stock.NormalizeType(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "etiqueta %q", bad)
	}
}

func TestBalance(t *testing.T) {
	inbound := decimal.NewFromInt(100)
	outbound := decimal.NewFromInt(35)
	assert.True(t, stock.Balance(inbound, outbound).Equal(decimal.NewFromInt(65)))
}

func product(current, min int64) *entity.Product {
	return &entity.Product{
		CurrentStock: decimal.NewFromInt(current),
		MinStock:     decimal.NewFromInt(min),
	}
}

// La clasificación sigue una precedencia estricta: sin stock, sobregiro del
// libro, bajo mínimo, y por último en stock.
func TestStatus_Precedencia(t *testing.T) {
	noOut := decimal.Zero

	// Stock <= 0: fuera de stock sin importar el mínimo.
	assert.Equal(t, stock.StatusOutOfStock, stock.Status(product(0, 20), noOut))
	assert.Equal(t, stock.StatusOutOfStock, stock.Status(product(-5, 0), noOut))

	// Stock menor que el total de salidas históricas: también fuera de stock.
	assert.Equal(t, stock.StatusOutOfStock, stock.Status(product(30, 0), decimal.NewFromInt(40)))

	// Stock <= mínimo: bajo.
	assert.Equal(t, stock.StatusLowStock, stock.Status(product(10, 20), noOut))
	assert.Equal(t, stock.StatusLowStock, stock.Status(product(20, 20), noOut))

	// 50 en stock con 40 de salidas: 50 >= 40 pero 50-40=10 no entra en juego;
	// lo que manda es el mínimo.
	assert.Equal(t, stock.StatusLowStock, stock.Status(product(50, 50), decimal.NewFromInt(40)))

	// Por encima del mínimo: en stock.
	assert.Equal(t, stock.StatusInStock, stock.Status(product(100, 20), noOut))
	assert.Equal(t, stock.StatusInStock, stock.Status(product(1, 0), noOut))
}

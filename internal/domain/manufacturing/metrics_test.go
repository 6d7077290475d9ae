package manufacturing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuflow/manuflow-api/internal/domain/manufacturing"
)

func TestProgress(t *testing.T) {
	cases := []struct {
		name      string
		produced  string
		toProduce string
		want      int
	}{
		{"sin producción", "0", "10", 0},
		{"mitad", "5", "10", 50},
		{"completo", "10", "10", 100},
		{"sobreproducción no se recorta", "12", "10", 120},
		{"redondeo al entero más cercano", "1", "3", 33},
		{"planificado cero", "5", "0", 0},
		{"planificado negativo", "5", "-1", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			produced := decimal.RequireFromString(tc.produced)
			toProduce := decimal.RequireFromString(tc.toProduce)
			assert.Equal(t, tc.want, manufacturing.Progress(produced, toProduce))
		})
	}
}

func TestEfficiency_NilCuandoNoHayValor(t *testing.T) {
	estimated := decimal.NewFromInt(30)

	// Sin tiempo real todavía.
	assert.Nil(t, manufacturing.Efficiency(estimated, nil))

	// Tiempo real cero o negativo: división sin sentido, nil en vez de 0%.
	zero := decimal.Zero
	assert.Nil(t, manufacturing.Efficiency(estimated, &zero))
	negative := decimal.NewFromInt(-5)
	assert.Nil(t, manufacturing.Efficiency(estimated, &negative))

	// Estimado no positivo: también nil.
	actual := decimal.NewFromInt(30)
	assert.Nil(t, manufacturing.Efficiency(decimal.Zero, &actual))
}

func TestEfficiency_EstimadoSobreReal(t *testing.T) {
	estimated := decimal.NewFromInt(30)

	actual := decimal.NewFromInt(30)
	got := manufacturing.Efficiency(estimated, &actual)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "30/30 debe ser 100, fue %s", got)

	// Tardó el doble de lo estimado: eficiencia 50.
	actual = decimal.NewFromInt(60)
	got = manufacturing.Efficiency(estimated, &actual)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(50)), "30/60 debe ser 50, fue %s", got)

	// Más rápido de lo estimado: puede superar 100.
	actual = decimal.NewFromInt(20)
	got = manufacturing.Efficiency(estimated, &actual)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "30/20 debe ser 150, fue %s", got)
}

package manufacturing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
	"github.com/manuflow/manuflow-api/internal/domain/manufacturing"
)

// Transiciones válidas de la orden de fabricación.
func TestConfirmOrder_DesdePlanned(t *testing.T) {
	state, err := manufacturing.ConfirmOrder(entity.MOStatePlanned)
	assert.NoError(t, err)
	assert.Equal(t, entity.MOStateInProgress, state)
}

func TestCompleteOrder_DesdeInProgress(t *testing.T) {
	state, err := manufacturing.CompleteOrder(entity.MOStateInProgress)
	assert.NoError(t, err)
	assert.Equal(t, entity.MOStateDone, state)
}

func TestCancelOrder_DesdePlannedYDesdeInProgress(t *testing.T) {
	for _, from := range []string{entity.MOStatePlanned, entity.MOStateInProgress} {
		state, err := manufacturing.CancelOrder(from)
		assert.NoError(t, err, "cancel desde %s", from)
		assert.Equal(t, entity.MOStateCancelled, state)
	}
}

// Transiciones inválidas: toda combinación fuera del grafo devuelve error y
// no produce estado.
func TestTransicionesInvalidasDeOrden(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) (string, error)
		from string
	}{
		{"confirm desde in_progress", manufacturing.ConfirmOrder, entity.MOStateInProgress},
		{"confirm desde done", manufacturing.ConfirmOrder, entity.MOStateDone},
		{"confirm desde cancelled", manufacturing.ConfirmOrder, entity.MOStateCancelled},
		{"complete desde planned", manufacturing.CompleteOrder, entity.MOStatePlanned},
		{"complete desde done", manufacturing.CompleteOrder, entity.MOStateDone},
		{"complete desde cancelled", manufacturing.CompleteOrder, entity.MOStateCancelled},
		{"cancel desde done", manufacturing.CancelOrder, entity.MOStateDone},
		{"cancel desde cancelled", manufacturing.CancelOrder, entity.MOStateCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, err := tc.fn(tc.from)
			assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
			assert.Empty(t, state)
		})
	}
}

func TestStartWorkOrder_SoloDesdePending(t *testing.T) {
	state, err := manufacturing.StartWorkOrder(entity.WOStatePending)
	assert.NoError(t, err)
	assert.Equal(t, entity.WOStateInProgress, state)

	for _, from := range []string{entity.WOStateInProgress, entity.WOStateCompleted, entity.WOStateCancelled} {
		_, err := manufacturing.StartWorkOrder(from)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "start desde %s", from)
	}
}

// Completar una WO sin iniciarla primero no es válido.
func TestCompleteWorkOrder_SoloDesdeInProgress(t *testing.T) {
	state, err := manufacturing.CompleteWorkOrder(entity.WOStateInProgress)
	assert.NoError(t, err)
	assert.Equal(t, entity.WOStateCompleted, state)

	for _, from := range []string{entity.WOStatePending, entity.WOStateCompleted, entity.WOStateCancelled} {
		_, err := manufacturing.CompleteWorkOrder(from)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "complete desde %s", from)
	}
}

func TestCancelWorkOrder_DesdeNoTerminales(t *testing.T) {
	for _, from := range []string{entity.WOStatePending, entity.WOStateInProgress} {
		state, err := manufacturing.CancelWorkOrder(from)
		assert.NoError(t, err, "cancel desde %s", from)
		assert.Equal(t, entity.WOStateCancelled, state)
	}
	for _, from := range []string{entity.WOStateCompleted, entity.WOStateCancelled} {
		_, err := manufacturing.CancelWorkOrder(from)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "cancel desde %s", from)
	}
}

// Package manufacturing contiene la máquina de estados de órdenes de
// fabricación (MO) y órdenes de trabajo (WO) como servicios de dominio puros:
// validan la transición sobre el estado actual y devuelven el nuevo estado,
// sin efectos secundarios.
package manufacturing

import (
	"github.com/manuflow/manuflow-api/internal/domain"
	"github.com/manuflow/manuflow-api/internal/domain/entity"
)

// ConfirmOrder valida planned -> in_progress.
func ConfirmOrder(state string) (string, error) {
	if state != entity.MOStatePlanned {
		return "", domain.ErrInvalidStateTransition
	}
	return entity.MOStateInProgress, nil
}

// CompleteOrder valida in_progress -> done.
func CompleteOrder(state string) (string, error) {
	if state != entity.MOStateInProgress {
		return "", domain.ErrInvalidStateTransition
	}
	return entity.MOStateDone, nil
}

// CancelOrder valida planned|in_progress -> cancelled. Una orden en done no se cancela.
func CancelOrder(state string) (string, error) {
	if state != entity.MOStatePlanned && state != entity.MOStateInProgress {
		return "", domain.ErrInvalidStateTransition
	}
	return entity.MOStateCancelled, nil
}

// StartWorkOrder valida pending -> in_progress.
func StartWorkOrder(state string) (string, error) {
	if state != entity.WOStatePending {
		return "", domain.ErrInvalidStateTransition
	}
	return entity.WOStateInProgress, nil
}

// CompleteWorkOrder valida in_progress -> completed.
func CompleteWorkOrder(state string) (string, error) {
	if state != entity.WOStateInProgress {
		return "", domain.ErrInvalidStateTransition
	}
	return entity.WOStateCompleted, nil
}

// CancelWorkOrder valida pending|in_progress -> cancelled. Solo se invoca por
// cascada al cancelar la MO; no existe cancelación directa de WO.
func CancelWorkOrder(state string) (string, error) {
	if state != entity.WOStatePending && state != entity.WOStateInProgress {
		return "", domain.ErrInvalidStateTransition
	}
	return entity.WOStateCancelled, nil
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkCenter representa un centro de trabajo contra el que se ejecutan órdenes de trabajo.
// Un centro inactivo no debe recibir nuevas órdenes de trabajo.
type WorkCenter struct {
	ID          string
	Name        string
	Description string
	CostPerHour decimal.Decimal
	Capacity    int // >= 1
	IsActive    bool
	CreatedAt   time.Time
}

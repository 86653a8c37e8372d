package entity

import "time"

// ProductionOrder orden de producción a programar: producto, cantidad y fecha
// de entrega. Entrada efímera del scheduler, no se persiste en este motor.
type ProductionOrder struct {
	ID        string
	ProductID string
	Quantity  int64
	DueDate   time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialContributionDTO traza qué producto y cantidad aportan a la demanda
// fusionada de un material (para mensajes de faltante entendibles).
type MaterialContributionDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Required  decimal.Decimal `json:"required"`
}

// MergedMaterialDemandDTO demanda total de un material sumada entre todos los
// productos del plan. La suficiencia se evalúa contra este total, no contra la
// vista aislada de cada producto.
type MergedMaterialDemandDTO struct {
	MaterialID     string                    `json:"material_id"`
	MaterialName   string                    `json:"material_name"`
	Unit           string                    `json:"unit"`
	TotalRequired  decimal.Decimal           `json:"total_required"`
	AvailableStock decimal.Decimal           `json:"available_stock"`
	Shortage       decimal.Decimal           `json:"shortage"`
	Sufficient     bool                      `json:"sufficient"`
	Contributions  []MaterialContributionDTO `json:"contributions"`
}

// ProductBatchEntryDTO slot por producto dentro del lote multi-producto.
// Un producto fallido (sin receta, tipo inválido) no aborta a los demás.
type ProductBatchEntryDTO struct {
	Quantity int64                 `json:"quantity"`
	Batch    *BatchRequirementsDTO `json:"batch,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// MultiProductBatchDTO vista agregada de un plan multi-producto. Ambos mapas
// van por ID (producto / material): el orden de iteración no es contrato.
type MultiProductBatchDTO struct {
	Products        map[string]*ProductBatchEntryDTO    `json:"products"`
	Materials       map[string]*MergedMaterialDemandDTO `json:"materials"`
	OverallFeasible bool                                `json:"overall_feasible"`
	TotalCost       decimal.Decimal                     `json:"total_cost"`
}

// Estados de un plan de producción y de sus productos.
const (
	PlanFeasible   = "feasible"
	PlanInfeasible = "infeasible"
	PlanPartial    = "partial"

	ProductFullyFeasible     = "fully_feasible"
	ProductPartiallyFeasible = "partially_feasible"
	ProductInfeasible        = "infeasible"
)

// Modos de prioridad aceptados por el planificador. Hoy no alteran el orden de
// asignación (limitación documentada): cada producto se optimiza por separado.
const (
	PriorityBalanced    = "balanced"
	PriorityMaxQuantity = "maximize_quantity"
	PriorityMinCost     = "minimize_cost"
)

// PlanOptionsDTO opciones de CreateProductionPlan.
type PlanOptionsDTO struct {
	AllowPartial bool   `json:"allow_partial"`
	PriorityMode string `json:"priority_mode"`
}

// ProductPlanEntryDTO veredicto del optimizador para un producto.
type ProductPlanEntryDTO struct {
	ProductID         string          `json:"product_id"`
	RequestedQuantity int64           `json:"requested_quantity"`
	SuggestedQuantity int64           `json:"suggested_quantity"`
	Status            string          `json:"status"` // fully_feasible | partially_feasible | infeasible
	ReductionPct      decimal.Decimal `json:"reduction_pct"`
	Reason            string          `json:"reason,omitempty"`
}

// ProductionPlanDTO resultado de CreateProductionPlan.
type ProductionPlanDTO struct {
	PlanID          string                `json:"plan_id"`
	Status          string                `json:"status"` // feasible | infeasible | partial
	Batch           *MultiProductBatchDTO `json:"batch"`
	Products        []ProductPlanEntryDTO `json:"products,omitempty"`
	Recommendations []string              `json:"recommendations"`
}

// Estados de una orden dentro del cronograma.
const (
	OrderScheduled        = "scheduled"
	OrderMaterialShortage = "material_shortage"
	OrderBeyondHorizon    = "beyond_horizon"
	OrderError            = "error"
)

// ScheduledOrderDTO veredicto del scheduler para una orden.
type ScheduledOrderDTO struct {
	OrderID          string    `json:"order_id"`
	ProductID        string    `json:"product_id"`
	Quantity         int64     `json:"quantity"`
	DueDate          time.Time `json:"due_date"`
	ScheduledDate    time.Time `json:"scheduled_date,omitempty"`
	Status           string    `json:"status"`
	MissingMaterials []string  `json:"missing_materials,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// ProductionScheduleDTO cronograma greedy de una pasada ordenado por fecha de
// entrega. EndingLedger es el libro mayor de disponibilidad al terminar.
type ProductionScheduleDTO struct {
	ScheduleID   string                     `json:"schedule_id"`
	HorizonDays  int                        `json:"horizon_days"`
	Orders       []ScheduledOrderDTO        `json:"orders"`
	EndingLedger map[string]decimal.Decimal `json:"ending_ledger"`
}

// RestockSuggestionDTO sugerencia de reabastecimiento para un material bajo su
// punto de reorden.
type RestockSuggestionDTO struct {
	MaterialID         string          `json:"material_id"`
	SKU                string          `json:"sku"`
	MaterialName       string          `json:"material_name"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderLevel       decimal.Decimal `json:"reorder_level"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // ReorderLevel * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}

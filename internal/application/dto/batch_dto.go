package dto

import "github.com/shopspring/decimal"

// ComponentRequirementDTO consumo proyectado de un componente para un lote.
type ComponentRequirementDTO struct {
	MaterialID       string          `json:"material_id"`
	MaterialName     string          `json:"material_name"`
	Unit             string          `json:"unit"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"` // effective * lote
	AvailableStock   decimal.Decimal `json:"available_stock"`
	Shortage         decimal.Decimal `json:"shortage"` // max(0, required - stock)
	Sufficient       bool            `json:"sufficient"`
	Cost             decimal.Decimal `json:"cost"` // required * costo unitario
}

// CostAnalysisDTO análisis de costo de un lote.
type CostAnalysisDTO struct {
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
}

// BatchRequirementsDTO proyección de materiales para producir Quantity unidades.
// Es una proyección, no un compromiso: el stock no se muta.
type BatchRequirementsDTO struct {
	ProductID  string                    `json:"product_id"`
	Quantity   int64                     `json:"quantity"`
	CanProduce bool                      `json:"can_produce"`
	Components []ComponentRequirementDTO `json:"components"`
	Shortages  []ComponentRequirementDTO `json:"shortages,omitempty"` // solo shortage > 0
	Cost       CostAnalysisDTO           `json:"cost_analysis"`
	Warnings   []string                  `json:"warnings,omitempty"`
}

// MaterialRemainingDTO remanente con signo tras una producción simulada.
// A diferencia de Shortage (recortado a 0), Remaining sí puede ser negativo
// para señalar infactibilidad de forma explícita.
type MaterialRemainingDTO struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Remaining    decimal.Decimal `json:"remaining_after_production"`
	Negative     bool            `json:"negative"`
}

// ProductionSimulationDTO "qué pasaría si" de un lote: requisitos más el
// remanente proyectado por material. Solo simulación, jamás se persiste.
type ProductionSimulationDTO struct {
	Batch     *BatchRequirementsDTO  `json:"batch"`
	Remaining []MaterialRemainingDTO `json:"remaining"`
	Feasible  bool                   `json:"feasible"`
}

// BatchOptionDTO candidato evaluado por la escalera de tamaños de lote.
type BatchOptionDTO struct {
	Quantity    int64           `json:"quantity"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
}

// OptimalBatchDTO recomendación de tamaño de lote por menor costo unitario.
// Candidatos que exceden la capacidad actual se excluyen, no se recortan.
type OptimalBatchDTO struct {
	ProductID      string           `json:"product_id"`
	MaxCapacity    int64            `json:"max_capacity"`
	Options        []BatchOptionDTO `json:"options"`
	Recommended    *BatchOptionDTO  `json:"recommended,omitempty"`
	Recommendation string           `json:"recommendation"`
}

// DailyCapacityDTO capacidad proyectada para un día del horizonte.
type DailyCapacityDTO struct {
	Day      int   `json:"day"`
	Capacity int64 `json:"capacity"`
}

// CapacityForecastDTO pronóstico de agotamiento lineal de capacidad.
// DaysUntilDepletion es nil cuando el uso diario es 0 (horizonte indefinido).
type CapacityForecastDTO struct {
	ProductID          string             `json:"product_id"`
	CurrentCapacity    int64              `json:"current_capacity"`
	AvgDailyUsage      decimal.Decimal    `json:"avg_daily_usage"`
	Days               []DailyCapacityDTO `json:"days"`
	DaysUntilDepletion *int64             `json:"days_until_depletion,omitempty"`
}

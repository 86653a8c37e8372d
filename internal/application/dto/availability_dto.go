package dto

import "github.com/shopspring/decimal"

// BottleneckDTO material cuello de botella de una receta.
type BottleneckDTO struct {
	MaterialID   string `json:"material_id"`
	MaterialName string `json:"material_name"`
}

// ComponentAvailabilityDTO detalle por componente de la explosión BOM.
// RequiredQuantity es la cantidad efectiva por unidad producida (incluye merma).
type ComponentAvailabilityDTO struct {
	MaterialID       string          `json:"material_id"`
	MaterialName     string          `json:"material_name"`
	Unit             string          `json:"unit"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	AvailableStock   decimal.Decimal `json:"available_stock"`
	MaxProducible    int64           `json:"max_producible"`
	Sufficient       bool            `json:"sufficient"`
	Limiting         bool            `json:"limiting"`  // alcanza el mínimo de la receta
	Unbounded        bool            `json:"unbounded"` // cantidad efectiva 0: no limita (dato degenerado)
}

// AvailabilityResultDTO resultado de la explosión BOM para un producto.
// Reason distingue el "cero real" (stock insuficiente) del "cero por falta de
// receta"; Warnings anota datos degenerados (componentes con cantidad efectiva 0,
// receta sin componentes) sin abortar el cálculo.
type AvailabilityResultDTO struct {
	ProductID   string                     `json:"product_id"`
	ProductName string                     `json:"product_name"`
	MaxQuantity int64                      `json:"max_quantity"`
	Unbounded   bool                       `json:"unbounded"` // receta sin componentes limitantes
	CanProduce  bool                       `json:"can_produce"`
	Bottleneck  *BottleneckDTO             `json:"bottleneck_material,omitempty"`
	Components  []ComponentAvailabilityDTO `json:"per_component_detail"`
	Reason      string                     `json:"reason,omitempty"`
	Warnings    []string                   `json:"warnings,omitempty"`
}

// BulkAvailabilityEntryDTO slot de un producto dentro del cálculo masivo.
// Error aislado por producto: un producto inválido no aborta el lote.
type BulkAvailabilityEntryDTO struct {
	Result *AvailabilityResultDTO `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a finished-good product record
type Product struct {
	ID           string
	DefaultCode  string
	Name         string
	Category     string
	QtyAvailable decimal.Decimal
}

// SaleLine represents a sales order line record
type SaleLine struct {
	ID           string
	ProductID    string
	OrderState   string
	OrderedQty   decimal.Decimal
	DeliveredQty decimal.Decimal
}

// ProductionOrder represents a manufacturing order record.
// Orders are linked to products through the suffix of their product code.
type ProductionOrder struct {
	ID           string
	ProductCode  string
	State        string
	Qty          decimal.Decimal
	PlannedStart time.Time
}

// Orderpoint represents a replenishment rule record
type Orderpoint struct {
	ProductID string
	MinQty    decimal.Decimal
	MaxQty    decimal.Decimal
}

// Tooling represents the molds available for a product
type Tooling struct {
	ProductID string
	MoldCount decimal.Decimal
}

// PlanRun represents a persisted planning run
type PlanRun struct {
	ID                 string
	PlanDate           string
	Mode               string
	SizeFilter         string
	DegenerateFallback bool
	CreatedAt          time.Time
}

// PlanLine represents a persisted plan line
type PlanLine struct {
	ID           string
	RunID        string
	ItemID       string
	ProductCode  string
	SizeCategory string
	PriorityRank int
	StockQty     decimal.Decimal
	SalesQty     decimal.Decimal
	InProcessQty decimal.Decimal
	MinQty       decimal.Decimal
	MaxQty       decimal.Decimal
	MoldsQty     decimal.Decimal
	RequiredQty  decimal.Decimal
	ProduceQty   decimal.Decimal
	IsExcess     bool
}

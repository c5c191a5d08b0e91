package db

import (
	"context"
	"time"
)

// CatalogStore defines the read operations that feed a planning run
type CatalogStore interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetSaleLines(ctx context.Context) ([]SaleLine, error)
	GetOpenProductionOrders(ctx context.Context, startsBy time.Time) ([]ProductionOrder, error)
	GetOrderpoints(ctx context.Context) ([]Orderpoint, error)
	GetTooling(ctx context.Context) ([]Tooling, error)
}

// PlanStore defines the interface for plan run persistence
type PlanStore interface {
	InsertPlanRun(ctx context.Context, run *PlanRun, lines []PlanLine) error
	GetPlanRuns(ctx context.Context) ([]PlanRun, error)
	GetPlanLines(ctx context.Context, runID string) ([]PlanLine, error)
}

// Database defines the interface for all database operations.
// Both the Postgres-backed postgres.DB and the YAML-backed catalogfile.Store implement it.
type Database interface {
	CatalogStore
	PlanStore
}

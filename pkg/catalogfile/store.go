// Package catalogfile provides a catalog store backed by a YAML snapshot file,
// for planning without a database connection.
package catalogfile

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/daily-production-plan/pkg/core/catalog"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

var _ db.Database = (*Store)(nil)

// File is the on-disk layout of a catalog snapshot
type File struct {
	Products         []ProductRecord         `yaml:"products" validate:"required,min=1,dive"`
	SaleLines        []SaleLineRecord        `yaml:"saleLines" validate:"dive"`
	ProductionOrders []ProductionOrderRecord `yaml:"productionOrders" validate:"dive"`
	Orderpoints      []OrderpointRecord      `yaml:"orderpoints" validate:"dive"`
	Tooling          []ToolingRecord         `yaml:"tooling" validate:"dive"`
}

type ProductRecord struct {
	ID           string  `yaml:"id" validate:"required"`
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Category     string  `yaml:"category"`
	QtyAvailable float64 `yaml:"qtyAvailable"`
}

type SaleLineRecord struct {
	ID        string  `yaml:"id"`
	ProductID string  `yaml:"productId" validate:"required"`
	State     string  `yaml:"state" validate:"required"`
	Ordered   float64 `yaml:"ordered" validate:"min=0"`
	Delivered float64 `yaml:"delivered" validate:"min=0"`
}

type ProductionOrderRecord struct {
	ID           string  `yaml:"id"`
	Code         string  `yaml:"code" validate:"required"`
	State        string  `yaml:"state" validate:"required"`
	Qty          float64 `yaml:"qty" validate:"min=0"`
	PlannedStart string  `yaml:"plannedStart" validate:"omitempty,datetime=2006-01-02"`
}

type OrderpointRecord struct {
	ProductID string  `yaml:"productId" validate:"required"`
	Min       float64 `yaml:"min" validate:"min=0"`
	Max       float64 `yaml:"max" validate:"min=0,gtefield=Min"`
}

type ToolingRecord struct {
	ProductID string  `yaml:"productId" validate:"required"`
	Molds     float64 `yaml:"molds" validate:"min=0"`
}

// Store serves catalog reads from a snapshot and keeps saved plan runs in memory
type Store struct {
	products         []db.Product
	saleLines        []db.SaleLine
	productionOrders []db.ProductionOrder
	orderpoints      []db.Orderpoint
	tooling          []db.Tooling

	mu    sync.Mutex
	runs  []db.PlanRun
	lines map[string][]db.PlanLine
}

// Open reads and validates a catalog snapshot file
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog file %s: %w", path, err)
	}
	return store, nil
}

// Parse builds a store from YAML snapshot content
func Parse(data []byte) (*Store, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	return NewStore(file)
}

// NewStore converts snapshot records into store rows
func NewStore(file File) (*Store, error) {
	s := &Store{lines: make(map[string][]db.PlanLine)}

	seen := make(map[string]bool, len(file.Products))
	for _, p := range file.Products {
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true
		s.products = append(s.products, db.Product{
			ID:           p.ID,
			DefaultCode:  p.Code,
			Name:         p.Name,
			Category:     p.Category,
			QtyAvailable: decimal.NewFromFloat(p.QtyAvailable),
		})
	}

	for i, l := range file.SaleLines {
		id := l.ID
		if id == "" {
			id = fmt.Sprintf("sale-%d", i+1)
		}
		s.saleLines = append(s.saleLines, db.SaleLine{
			ID:           id,
			ProductID:    l.ProductID,
			OrderState:   l.State,
			OrderedQty:   decimal.NewFromFloat(l.Ordered),
			DeliveredQty: decimal.NewFromFloat(l.Delivered),
		})
	}

	for i, o := range file.ProductionOrders {
		id := o.ID
		if id == "" {
			id = fmt.Sprintf("mo-%d", i+1)
		}
		order := db.ProductionOrder{
			ID:          id,
			ProductCode: o.Code,
			State:       o.State,
			Qty:         decimal.NewFromFloat(o.Qty),
		}
		if o.PlannedStart != "" {
			start, err := time.Parse("2006-01-02", o.PlannedStart)
			if err != nil {
				return nil, fmt.Errorf("invalid planned start for order %s: %w", id, err)
			}
			order.PlannedStart = start
		}
		s.productionOrders = append(s.productionOrders, order)
	}

	for _, op := range file.Orderpoints {
		s.orderpoints = append(s.orderpoints, db.Orderpoint{
			ProductID: op.ProductID,
			MinQty:    decimal.NewFromFloat(op.Min),
			MaxQty:    decimal.NewFromFloat(op.Max),
		})
	}

	for _, t := range file.Tooling {
		s.tooling = append(s.tooling, db.Tooling{
			ProductID: t.ProductID,
			MoldCount: decimal.NewFromFloat(t.Molds),
		})
	}

	return s, nil
}

// GetProducts returns the snapshot products in file order
func (s *Store) GetProducts(ctx context.Context) ([]db.Product, error) {
	return slices.Clone(s.products), nil
}

// GetSaleLines returns sale lines of confirmed orders
func (s *Store) GetSaleLines(ctx context.Context) ([]db.SaleLine, error) {
	var lines []db.SaleLine
	for _, l := range s.saleLines {
		if slices.Contains(catalog.ConfirmedOrderStates, l.OrderState) {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// GetOpenProductionOrders returns orders counted as in process, optionally cut off at startsBy
func (s *Store) GetOpenProductionOrders(ctx context.Context, startsBy time.Time) ([]db.ProductionOrder, error) {
	var orders []db.ProductionOrder
	for _, o := range s.productionOrders {
		if catalog.IsOpenProductionOrder(o, startsBy) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (s *Store) GetOrderpoints(ctx context.Context) ([]db.Orderpoint, error) {
	return slices.Clone(s.orderpoints), nil
}

func (s *Store) GetTooling(ctx context.Context) ([]db.Tooling, error) {
	return slices.Clone(s.tooling), nil
}

// InsertPlanRun keeps a plan run and its lines for the lifetime of the store
func (s *Store) InsertPlanRun(ctx context.Context, run *db.PlanRun, lines []db.PlanLine) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("plan run requires an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lines[run.ID]; exists {
		return fmt.Errorf("plan run %s already exists", run.ID)
	}

	saved := make([]db.PlanLine, len(lines))
	for i, l := range lines {
		l.RunID = run.ID
		saved[i] = l
	}
	s.runs = append(s.runs, *run)
	s.lines[run.ID] = saved
	return nil
}

// GetPlanRuns returns saved runs, most recent first
func (s *Store) GetPlanRuns(ctx context.Context) ([]db.PlanRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := slices.Clone(s.runs)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func (s *Store) GetPlanLines(ctx context.Context, runID string) ([]db.PlanLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.lines[runID]), nil
}

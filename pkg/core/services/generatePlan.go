package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/daily-production-plan/internal/config"
	"github.com/jakechorley/daily-production-plan/pkg/core/catalog"
	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
	"github.com/jakechorley/daily-production-plan/pkg/db"
)

// ErrNotProductionDay is returned when planning is requested for a day the plant does not work
var ErrNotProductionDay = errors.New("not a production day")

// GeneratePlanStore defines the database operations needed for generating a plan
type GeneratePlanStore interface {
	db.CatalogStore
	InsertPlanRun(ctx context.Context, run *db.PlanRun, lines []db.PlanLine) error
}

// GeneratePlanOptions controls a single planning run
type GeneratePlanOptions struct {
	Date time.Time

	// Mode and SizeFilter replace the configured values when set
	Mode       planner.PlanningMode
	SizeFilter planner.SizeFilter

	// DryRun skips persistence
	DryRun bool

	// ForceCommit persists the plan even when post-run validation reports violations
	ForceCommit bool
}

// GeneratePlanResult contains the planning outcome
type GeneratePlanResult struct {
	RunID            string
	PlanDate         string
	Policy           planner.Policy
	Plan             *planner.PlanResult
	ProductCodes     map[string]string
	ValidationErrors []planner.PlanValidationError
	Saved            bool
}

// GeneratePlan builds the production plan for a date from the current catalog.
// If DryRun is set, nothing is saved. A plan failing validation is only saved with ForceCommit.
func GeneratePlan(
	ctx context.Context,
	store GeneratePlanStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts GeneratePlanOptions,
) (*GeneratePlanResult, error) {
	planDate := opts.Date.Format("2006-01-02")

	logger.Debug("Starting generatePlan",
		zap.String("date", planDate),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("force_commit", opts.ForceCommit))

	// Step 1: Production calendar
	working, err := cfg.IsProductionDay(opts.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check production calendar: %w", err)
	}
	if !working {
		return nil, fmt.Errorf("%w: %s", ErrNotProductionDay, planDate)
	}

	// Step 2: Policy for the date
	policy, err := cfg.Policy(opts.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to build policy: %w", err)
	}
	if opts.Mode != "" {
		policy.Mode = opts.Mode
	}
	if opts.SizeFilter != "" {
		policy.SizeFilter = opts.SizeFilter
	}

	for _, size := range planner.PlannedSizes {
		shift := policy.Shifts[size]
		logger.Debug("Shift policy",
			zap.String("size", string(size)),
			zap.Int("shifts", shift.Shifts),
			zap.Int("hours_per_shift", shift.HoursPerShift),
			zap.Int("max_tooling_changes", shift.MaxToolingChanges),
			zap.String("primary_capacity", policy.PrimaryCapacity(size).String()))
	}

	// Step 3: Catalog
	snapshot, err := loadSnapshot(ctx, store, cfg.InProcessStartsBy(opts.Date), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := catalog.BuildItems(snapshot)
	logger.Debug("Built planning items", zap.Int("count", len(items)))

	// Step 4: Plan
	logger.Info("Running planner",
		zap.String("mode", string(policy.Mode)),
		zap.String("size_filter", string(policy.SizeFilter)))
	plan, err := planner.GeneratePlan(items, policy)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}

	for _, size := range planner.PlannedSizes {
		totals := plan.TotalsBySize[size]
		logger.Info("Plan totals",
			zap.String("size", string(size)),
			zap.Int("lines", totals.Count),
			zap.String("produced", totals.ProducedQty.String()),
			zap.String("required", totals.RequiredQty.String()))
	}

	if plan.DegenerateFallback {
		logger.Warn("No item qualified for production - listing items with any demand signal instead")
	}

	// Step 5: Post-run validation
	validationErrors := planner.ValidatePlan(plan)
	for _, verr := range validationErrors {
		logger.Warn("Validation error",
			zap.String("check", verr.Check),
			zap.String("item_id", verr.ItemID),
			zap.String("size", string(verr.Size)),
			zap.String("description", verr.Description))
	}

	result := &GeneratePlanResult{
		RunID:            uuid.New().String(),
		PlanDate:         planDate,
		Policy:           policy,
		Plan:             plan,
		ProductCodes:     productCodes(snapshot.Products),
		ValidationErrors: validationErrors,
	}

	// Step 6: Persist
	shouldSave := !opts.DryRun && (len(validationErrors) == 0 || opts.ForceCommit)

	if shouldSave {
		run := &db.PlanRun{
			ID:                 result.RunID,
			PlanDate:           planDate,
			Mode:               string(policy.Mode),
			SizeFilter:         string(policy.SizeFilter),
			DegenerateFallback: plan.DegenerateFallback,
			CreatedAt:          time.Now().UTC(),
		}

		lines := make([]db.PlanLine, len(plan.Lines))
		for i, line := range plan.Lines {
			lines[i] = toDBPlanLine(uuid.New().String(), run.ID, result.ProductCodes[line.ItemID], line)
		}

		logger.Info("Saving plan",
			zap.String("run_id", run.ID),
			zap.Bool("forced", opts.ForceCommit && len(validationErrors) > 0))
		if err := store.InsertPlanRun(ctx, run, lines); err != nil {
			return nil, fmt.Errorf("failed to save plan: %w", err)
		}
		result.Saved = true
		logger.Info("Plan saved", zap.Int("lines", len(lines)))
	} else if opts.DryRun {
		logger.Info("Dry run mode - plan not saved")
	} else {
		logger.Warn("Plan failed validation - not saving (use forceCommit to save anyway)")
	}

	return result, nil
}

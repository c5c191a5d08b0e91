package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/daily-production-plan/pkg/core/planner"
)

const configBaseName = "daily_plan_config"

// DefaultCalendarStart anchors rrules that carry no DTSTART when planning.calendarStart is unset.
// It is a Monday so that bare weekly rules fall on Mondays.
const DefaultCalendarStart = "2000-01-03"

// Default changeover limits per size class
const (
	DefaultSmallToolingChanges = 5
	DefaultLargeToolingChanges = 4
)

// SizeShifts is the standing shift pattern of one production line family
type SizeShifts struct {
	Shifts            int  `yaml:"shifts" validate:"oneof=1 2 3"`
	HoursPerShift     int  `yaml:"hoursPerShift" validate:"oneof=8 12"`
	MaxToolingChanges *int `yaml:"maxToolingChanges,omitempty" validate:"omitempty,min=0"`
}

// UnitsPerShift overrides the shift output of one size class
type UnitsPerShift struct {
	Hours8  *int64 `yaml:"hours8,omitempty" validate:"omitempty,min=0"`
	Hours12 *int64 `yaml:"hours12,omitempty" validate:"omitempty,min=0"`
}

// UnitsPerShiftConfig holds the shift output overrides per size class
type UnitsPerShiftConfig struct {
	Small UnitsPerShift `yaml:"small"`
	Large UnitsPerShift `yaml:"large"`
}

// ShiftChange replaces parts of a size class shift pattern on matching dates
type ShiftChange struct {
	Shifts        *int `yaml:"shifts,omitempty" validate:"omitempty,oneof=1 2 3"`
	HoursPerShift *int `yaml:"hoursPerShift,omitempty" validate:"omitempty,oneof=8 12"`
}

// ShiftOverride defines shift changes applied on the dates matched by an rrule
type ShiftOverride struct {
	RRule string       `yaml:"rrule" validate:"required"`
	Small *ShiftChange `yaml:"small,omitempty"`
	Large *ShiftChange `yaml:"large,omitempty"`
}

// Planning holds the planning policy settings
type Planning struct {
	Mode           string              `yaml:"mode,omitempty" validate:"omitempty,oneof=suggested general"`
	SizeFilter     string              `yaml:"sizeFilter,omitempty" validate:"omitempty,oneof=all small large"`
	Small          SizeShifts          `yaml:"small"`
	Large          SizeShifts          `yaml:"large"`
	UnitsPerShift  UnitsPerShiftConfig `yaml:"unitsPerShift,omitempty"`
	ProductionDays string              `yaml:"productionDays,omitempty"`
	CalendarStart  string              `yaml:"calendarStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// InProcessCutoff limits in-process orders to those planned to start by the plan date
	InProcessCutoff bool            `yaml:"inProcessCutoff,omitempty"`
	ShiftOverrides  []ShiftOverride `yaml:"shiftOverrides,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string   `yaml:"databaseURL,omitempty" validate:"required_without=CatalogFile"`
	CatalogFile string   `yaml:"catalogFile,omitempty" validate:"required_without=DatabaseURL"`
	Planning    Planning `yaml:"planning"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads daily_plan_config.<env>.yaml, or the default file when env is empty.
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(configFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax and shift combinations
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := checkShiftCombination("planning.small", cfg.Planning.Small.Shifts, cfg.Planning.Small.HoursPerShift); err != nil {
		return err
	}
	if err := checkShiftCombination("planning.large", cfg.Planning.Large.Shifts, cfg.Planning.Large.HoursPerShift); err != nil {
		return err
	}

	anchor, err := cfg.calendarStart()
	if err != nil {
		return err
	}

	if cfg.Planning.ProductionDays != "" {
		if _, err := parseRule(cfg.Planning.ProductionDays, anchor); err != nil {
			return fmt.Errorf("invalid rrule in productionDays: %w", err)
		}
	}

	for i, override := range cfg.Planning.ShiftOverrides {
		if _, err := parseRule(override.RRule, anchor); err != nil {
			return fmt.Errorf("invalid rrule in shiftOverrides[%d]: %w", i, err)
		}

		small := cfg.Planning.Small.apply(override.Small)
		if err := checkShiftCombination(fmt.Sprintf("shiftOverrides[%d].small", i), small.Shifts, small.HoursPerShift); err != nil {
			return err
		}
		large := cfg.Planning.Large.apply(override.Large)
		if err := checkShiftCombination(fmt.Sprintf("shiftOverrides[%d].large", i), large.Shifts, large.HoursPerShift); err != nil {
			return err
		}
	}

	return nil
}

func checkShiftCombination(field string, shifts, hours int) error {
	if shifts == 3 && hours == 12 {
		return fmt.Errorf("config validation failed: %s: 3 shifts of 12 hours are not allowed", field)
	}
	return nil
}

// IsProductionDay reports whether the plant works on the given date.
// Every day is a production day when no calendar is configured.
func (c *Config) IsProductionDay(date time.Time) (bool, error) {
	if c.Planning.ProductionDays == "" {
		return true, nil
	}
	anchor, err := c.calendarStart()
	if err != nil {
		return false, err
	}
	rule, err := parseRule(c.Planning.ProductionDays, anchor)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate productionDays: %w", err)
	}
	return matchesDate(rule, date), nil
}

// InProcessStartsBy returns the planned-start cutoff for in-process orders on date,
// or the zero time when every open order counts
func (c *Config) InProcessStartsBy(date time.Time) time.Time {
	if !c.Planning.InProcessCutoff {
		return time.Time{}
	}
	return date
}

// Policy builds the planning policy for a date, applying the first matching shift override
func (c *Config) Policy(date time.Time) (planner.Policy, error) {
	small := c.Planning.Small
	large := c.Planning.Large

	anchor, err := c.calendarStart()
	if err != nil {
		return planner.Policy{}, err
	}

	for i, override := range c.Planning.ShiftOverrides {
		rule, err := parseRule(override.RRule, anchor)
		if err != nil {
			return planner.Policy{}, fmt.Errorf("failed to evaluate shiftOverrides[%d]: %w", i, err)
		}
		if matchesDate(rule, date) {
			small = small.apply(override.Small)
			large = large.apply(override.Large)
			break
		}
	}

	mode := planner.PlanningMode(c.Planning.Mode)
	if mode == "" {
		mode = planner.ModeSuggested
	}
	filter := planner.SizeFilter(c.Planning.SizeFilter)
	if filter == "" {
		filter = planner.FilterAll
	}

	return planner.Policy{
		Shifts: map[planner.SizeClass]planner.ShiftPolicy{
			planner.SizeSmall: small.policy(DefaultSmallToolingChanges),
			planner.SizeLarge: large.policy(DefaultLargeToolingChanges),
		},
		UnitsPerShift: c.Planning.UnitsPerShift.table(),
		Mode:          mode,
		SizeFilter:    filter,
	}, nil
}

func (s SizeShifts) apply(change *ShiftChange) SizeShifts {
	if change == nil {
		return s
	}
	if change.Shifts != nil {
		s.Shifts = *change.Shifts
	}
	if change.HoursPerShift != nil {
		s.HoursPerShift = *change.HoursPerShift
	}
	return s
}

func (s SizeShifts) policy(defaultChanges int) planner.ShiftPolicy {
	changes := defaultChanges
	if s.MaxToolingChanges != nil {
		changes = *s.MaxToolingChanges
	}
	return planner.ShiftPolicy{
		Shifts:            s.Shifts,
		HoursPerShift:     s.HoursPerShift,
		MaxToolingChanges: changes,
	}
}

func (u UnitsPerShiftConfig) table() planner.UnitsPerShiftTable {
	table := planner.DefaultUnitsPerShift()
	for size, units := range map[planner.SizeClass]UnitsPerShift{
		planner.SizeSmall: u.Small,
		planner.SizeLarge: u.Large,
	} {
		if units.Hours8 != nil {
			table[size][8] = *units.Hours8
		}
		if units.Hours12 != nil {
			table[size][12] = *units.Hours12
		}
	}
	return table
}

func (c *Config) calendarStart() (time.Time, error) {
	value := c.Planning.CalendarStart
	if value == "" {
		value = DefaultCalendarStart
	}
	start, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("config validation failed: planning.calendarStart: %w", err)
	}
	return start, nil
}

// parseRule parses an rrule, starting it at anchor unless the rule has its own DTSTART
func parseRule(ruleStr string, anchor time.Time) (*rrule.RRule, error) {
	option, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}
	if option.Dtstart.IsZero() {
		option.Dtstart = anchor
	}
	return rrule.NewRRule(*option)
}

// matchesDate reports whether the rule has an occurrence on the calendar day of date
func matchesDate(rule *rrule.RRule, date time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dateStr := day.Format("2006-01-02")

	// One day either side catches occurrences of rules anchored in other time zones
	for _, occurrence := range rule.Between(day.AddDate(0, 0, -1), day.AddDate(0, 0, 2), true) {
		if occurrence.Format("2006-01-02") == dateStr {
			return true
		}
	}
	return false
}

func configFileName(env string) string {
	if env == "" {
		return configBaseName + ".yaml"
	}
	return fmt.Sprintf("%s.%s.yaml", configBaseName, env)
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}

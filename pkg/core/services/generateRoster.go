package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/internal/config"
	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// GenerateRosterStore defines the database operations needed to generate
// a roster.
type GenerateRosterStore interface {
	db.OrganizationStore
	db.PeopleStore
	db.ScheduleStore
	db.PresenceStore
}

// GenerateParams carries the per-run options of a generation request.
type GenerateParams struct {
	StartDate string
	EndDate   string

	// Mode overrides the organization's optimization mode when set.
	Mode string

	// DaysBase/DaysHome override the rotation cadence when positive.
	DaysBase int
	DaysHome int

	// MinStaff overrides the staffing floor when positive.
	MinStaff int

	// Overrides are not-yet-persisted manual corrections to honor.
	Overrides *roster.OverrideSet
}

// RosterPlan bundles a generation result with the exact configuration
// that produced it, so validation and save operate on the same inputs.
type RosterPlan struct {
	Result *roster.Result
	Config roster.GenerationConfig
}

// GenerateRoster fetches the organization's records, seeds per-person
// history, and runs the generation algorithm. The run itself performs no
// writes; persistence happens only in SaveRoster.
func GenerateRoster(
	ctx context.Context,
	store GenerateRosterStore,
	cfg *config.Config,
	logger *zap.Logger,
	params GenerateParams,
) (*RosterPlan, error) {
	logger.Debug("Starting generateRoster",
		zap.String("start", params.StartDate),
		zap.String("end", params.EndDate))

	settingsRecord, err := store.GetOrganizationSettings(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization settings: %w", err)
	}
	settings := toModelSettings(settingsRecord)
	applyConfigOverrides(&settings, cfg, params)

	logger.Debug("Loaded settings",
		zap.String("mode", string(settings.OptimizationMode)),
		zap.Int("days_base", settings.DefaultDaysBase),
		zap.Int("days_home", settings.DefaultDaysHome))

	peopleRecords, err := store.GetPeople(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	logger.Debug("Found people", zap.Int("count", len(peopleRecords)))

	teamRecords, err := store.GetTeams(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	rotationRecords, err := store.GetTeamRotations(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team rotations: %w", err)
	}

	absenceRecords, err := store.GetAbsences(ctx, cfg.OrganizationID, params.StartDate, params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}
	logger.Debug("Found absences in window", zap.Int("count", len(absenceRecords)))

	blockageRecords, err := store.GetHourlyBlockages(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly blockages: %w", err)
	}

	taskRecords, err := store.GetTaskTemplates(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task templates: %w", err)
	}

	constraintRecords, err := store.GetInterPersonConstraints(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inter-person constraints: %w", err)
	}

	history, err := fetchHistorySeeds(ctx, store, cfg.OrganizationID, params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build history seeds: %w", err)
	}
	logger.Debug("Built history seeds", zap.Int("count", len(history)))

	tasks := toModelTasks(taskRecords)
	if extra := segmentOverrideTask(cfg.SegmentOverrides); extra != nil {
		tasks = append(tasks, *extra)
	}

	generationConfig := roster.GenerationConfig{
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		People:      toModelPeople(peopleRecords),
		Teams:       toModelTeams(teamRecords),
		Tasks:       tasks,
		Settings:    settings,
		Rotations:   toModelRotations(rotationRecords),
		InterPerson: toModelConstraints(constraintRecords),
		Absences:    toModelAbsences(absenceRecords),
		Blockages:   toModelBlockages(blockageRecords),
		History:     history,
		DaysBase:    params.DaysBase,
		DaysHome:    params.DaysHome,
		MinStaff:    params.MinStaff,
		Overrides:   params.Overrides,
		Engine:      availability.ParseEngineVersion(settings.EngineVersion),
	}

	result, err := roster.Generate(generationConfig)
	if err != nil {
		return nil, fmt.Errorf("roster generation failed: %w", err)
	}

	logger.Info("Roster generated",
		zap.Int("entries", len(result.Roster)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("unfulfilled", len(result.Unfulfilled)),
		zap.Float64("constraints_met_pct", result.Stats.Constraints.Percentage))

	return &RosterPlan{Result: result, Config: generationConfig}, nil
}

// ValidateRoster runs the pre-save validation pass over a plan.
func ValidateRoster(plan *RosterPlan, logger *zap.Logger) *roster.ValidationReport {
	report := roster.ValidateBeforeSave(plan.Result, plan.Config)
	logger.Info("Roster validated",
		zap.Int("issues", len(report.Issues)),
		zap.Bool("has_warnings", report.HasWarnings()))
	return report
}

// applyConfigOverrides layers file configuration and per-run parameters
// over the organization's stored settings.
func applyConfigOverrides(settings *model.OrganizationSettings, cfg *config.Config, params GenerateParams) {
	if cfg.OptimizationMode != "" {
		settings.OptimizationMode = model.OptimizationMode(cfg.OptimizationMode)
	}
	if params.Mode != "" {
		settings.OptimizationMode = model.OptimizationMode(params.Mode)
	}
	if cfg.ArrivalHour != "" {
		settings.ArrivalHour = cfg.ArrivalHour
	}
	if cfg.DefaultCadence.DaysBase > 0 {
		settings.DefaultDaysBase = cfg.DefaultCadence.DaysBase
	}
	if cfg.DefaultCadence.DaysHome > 0 {
		settings.DefaultDaysHome = cfg.DefaultCadence.DaysHome
	}
	if cfg.MinStaff > 0 {
		settings.MinStaff = cfg.MinStaff
	}
	if cfg.EngineVersion != "" {
		settings.EngineVersion = cfg.EngineVersion
	}
}

// segmentOverrideTask converts configured segment overrides into a
// synthetic task template so they feed task-demand computation like any
// stored segment.
func segmentOverrideTask(overrides []config.SegmentOverride) *model.TaskTemplate {
	if len(overrides) == 0 {
		return nil
	}
	task := &model.TaskTemplate{
		ID:   "config-segment-overrides",
		Name: "Configured segments",
	}
	for _, o := range overrides {
		task.Segments = append(task.Segments, model.TaskSegment{
			Recurrence:     model.SegmentWeekly,
			RRule:          o.RRule,
			StartTime:      o.StartTime,
			EndTime:        o.EndTime,
			RequiredPeople: o.RequiredPeople,
		})
	}
	return task
}

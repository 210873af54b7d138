package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/internal/config"
	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// mockStore implements GenerateRosterStore
type mockStore struct {
	settings    *db.OrganizationSettings
	people      []db.Person
	teams       []db.Team
	rotations   []db.TeamRotation
	absences    []db.Absence
	blockages   []db.HourlyBlockage
	tasks       []db.TaskTemplate
	constraints []db.InterPersonConstraint
	scheduling  []db.SchedulingConstraint
	presence    []db.DailyPresence
	shifts      []db.Shift

	settingsErr error
	peopleErr   error

	upserted           []db.DailyPresence
	availabilityCalls  int
	updatedPeople      map[string]map[string]db.AvailabilityEntry
	upsertErr          error
	updateAvailability error
}

func (m *mockStore) GetOrganizationSettings(ctx context.Context, orgID string) (*db.OrganizationSettings, error) {
	if m.settingsErr != nil {
		return nil, m.settingsErr
	}
	return m.settings, nil
}

func (m *mockStore) GetPeople(ctx context.Context, orgID string) ([]db.Person, error) {
	if m.peopleErr != nil {
		return nil, m.peopleErr
	}
	return m.people, nil
}

func (m *mockStore) GetTeams(ctx context.Context, orgID string) ([]db.Team, error) {
	return m.teams, nil
}

func (m *mockStore) GetTeamRotations(ctx context.Context, orgID string) ([]db.TeamRotation, error) {
	return m.rotations, nil
}

func (m *mockStore) GetAbsences(ctx context.Context, orgID, startDate, endDate string) ([]db.Absence, error) {
	return m.absences, nil
}

func (m *mockStore) GetHourlyBlockages(ctx context.Context, orgID string) ([]db.HourlyBlockage, error) {
	return m.blockages, nil
}

func (m *mockStore) GetTaskTemplates(ctx context.Context, orgID string) ([]db.TaskTemplate, error) {
	return m.tasks, nil
}

func (m *mockStore) GetInterPersonConstraints(ctx context.Context, orgID string) ([]db.InterPersonConstraint, error) {
	return m.constraints, nil
}

func (m *mockStore) GetSchedulingConstraints(ctx context.Context, orgID string) ([]db.SchedulingConstraint, error) {
	return m.scheduling, nil
}

func (m *mockStore) GetShifts(ctx context.Context, orgID string) ([]db.Shift, error) {
	return m.shifts, nil
}

func (m *mockStore) GetPresenceRange(ctx context.Context, orgID, startDate, endDate string) ([]db.DailyPresence, error) {
	return m.presence, nil
}

func (m *mockStore) UpsertDailyPresence(ctx context.Context, records []db.DailyPresence) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, records...)
	return nil
}

func (m *mockStore) UpdatePersonAvailability(ctx context.Context, orgID, personID string, entries map[string]db.AvailabilityEntry) error {
	if m.updateAvailability != nil {
		return m.updateAvailability
	}
	m.availabilityCalls++
	if m.updatedPeople == nil {
		m.updatedPeople = make(map[string]map[string]db.AvailabilityEntry)
	}
	m.updatedPeople[personID] = entries
	return nil
}

func testStore() *mockStore {
	return &mockStore{
		settings: &db.OrganizationSettings{
			OrganizationID:   "org-1",
			OptimizationMode: "ratio",
			DefaultDaysBase:  11,
			DefaultDaysHome:  3,
			ArrivalHour:      "08:00",
		},
		people: []db.Person{
			{ID: "p1", FirstName: "Ana", LastName: "Reyes", Active: true},
			{ID: "p2", FirstName: "Ben", LastName: "Okafor", Active: true},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseURL:    "postgres://localhost/test",
		OrganizationID: "org-1",
	}
}

func TestGenerateRoster_HappyPath(t *testing.T) {
	store := testStore()
	plan, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.NoError(t, err)
	require.NotNil(t, plan)

	// 2 people over 14 days.
	assert.Len(t, plan.Result.Roster, 28)
	assert.Equal(t, 14, plan.Result.Stats.Days)
	assert.Equal(t, 2, plan.Result.Stats.People)
	assert.Equal(t, "2025-03-01", plan.Config.StartDate)
}

func TestGenerateRoster_SettingsErrorAborts(t *testing.T) {
	store := testStore()
	store.settingsErr = fmt.Errorf("connection refused")

	_, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load organization settings")
}

func TestGenerateRoster_ConfigurationErrorRefusal(t *testing.T) {
	store := testStore()
	store.settings.OptimizationMode = "fastest"

	_, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown optimization mode")
}

func TestGenerateRoster_ParamsOverrideSettings(t *testing.T) {
	store := testStore()
	store.settings.OptimizationMode = "ratio"

	plan, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-07",
		Mode:      "min_staff",
		MinStaff:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ModeMinStaff, plan.Config.Settings.OptimizationMode)
	assert.Equal(t, 1, plan.Config.StaffingFloor())
}

func TestGenerateRoster_ConfigFileOverridesApplied(t *testing.T) {
	store := testStore()
	cfg := testConfig()
	cfg.DefaultCadence = config.CadenceConfig{DaysBase: 7, DaysHome: 7}
	cfg.EngineVersion = "legacy"

	plan, err := GenerateRoster(context.Background(), store, cfg, zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.NoError(t, err)

	daysBase, daysHome := plan.Config.Cadence()
	assert.Equal(t, 7, daysBase)
	assert.Equal(t, 7, daysHome)
	assert.Equal(t, "legacy", string(plan.Config.Engine))
}

func TestGenerateRoster_HistorySeedsFromPresence(t *testing.T) {
	store := testStore()
	store.presence = []db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-27", Status: "base"},
		{PersonID: "p1", Date: "2025-02-28", Status: "base"},
	}

	plan, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
	})
	require.NoError(t, err)

	seed, ok := plan.Config.History["p1"]
	require.True(t, ok)
	assert.Equal(t, "2025-02-28", seed.Date)
	assert.Equal(t, model.StatusBase, seed.Status)
	assert.Equal(t, 2, seed.Streak)

	// Seeded person continues without an arrival entry.
	for _, e := range plan.Result.Roster {
		if e.PersonID == "p1" && e.Date == "2025-03-01" {
			assert.Equal(t, model.EntryBase, e.Status)
		}
		if e.PersonID == "p2" && e.Date == "2025-03-01" {
			assert.Equal(t, model.EntryArrival, e.Status)
		}
	}
}

func TestGenerateRoster_SegmentOverridesBecomeTaskDemand(t *testing.T) {
	store := testStore()
	store.settings.OptimizationMode = "tasks"
	cfg := testConfig()
	cfg.SegmentOverrides = []config.SegmentOverride{
		{RRule: "FREQ=WEEKLY;BYDAY=MO", StartTime: "09:00", EndTime: "12:00", RequiredPeople: 1},
	}

	plan, err := GenerateRoster(context.Background(), store, cfg, zap.NewNop(), GenerateParams{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-09",
	})
	require.NoError(t, err)

	require.NotEmpty(t, plan.Config.Tasks)
	found := false
	for _, task := range plan.Config.Tasks {
		if task.ID == "config-segment-overrides" {
			found = true
			require.Len(t, task.Segments, 1)
			assert.Equal(t, model.SegmentWeekly, task.Segments[0].Recurrence)
		}
	}
	assert.True(t, found)

	// Mondays in the window must be staffed.
	assert.GreaterOrEqual(t, plan.Result.Stats.PresentPerDay["2025-03-03"], 1)
}

func TestValidateRoster_WrapsValidation(t *testing.T) {
	store := testStore()
	plan, err := GenerateRoster(context.Background(), store, testConfig(), zap.NewNop(), GenerateParams{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.NoError(t, err)

	report := ValidateRoster(plan, zap.NewNop())
	require.NotNil(t, report)
	assert.False(t, report.HasWarnings())
}

package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// mockPresenceStore implements SaveRosterStore and records concurrency of
// the per-person update fan-out.
type mockPresenceStore struct {
	mu            sync.Mutex
	upserted      []db.DailyPresence
	updatedPeople map[string]map[string]db.AvailabilityEntry

	inFlight      int
	maxInFlight   int
	upsertErr     error
	updateErrFor  string
	updateBlocked chan struct{}
}

func (m *mockPresenceStore) GetPresenceRange(ctx context.Context, orgID, startDate, endDate string) ([]db.DailyPresence, error) {
	return nil, nil
}

func (m *mockPresenceStore) UpsertDailyPresence(ctx context.Context, records []db.DailyPresence) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserted = append(m.upserted, records...)
	return nil
}

func (m *mockPresenceStore) UpdatePersonAvailability(ctx context.Context, orgID, personID string, entries map[string]db.AvailabilityEntry) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	if m.updateBlocked != nil {
		<-m.updateBlocked
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
	if m.updateErrFor == personID {
		return fmt.Errorf("update failed for %s", personID)
	}
	if m.updatedPeople == nil {
		m.updatedPeople = make(map[string]map[string]db.AvailabilityEntry)
	}
	m.updatedPeople[personID] = entries
	return nil
}

func planForPeople(t *testing.T, personCount, days int) *RosterPlan {
	t.Helper()

	people := make([]model.Person, personCount)
	for i := range people {
		people[i] = model.Person{ID: fmt.Sprintf("p%02d", i+1), Active: true}
	}
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cfg := roster.GenerationConfig{
		StartDate: model.FormatDate(start),
		EndDate:   model.FormatDate(start.AddDate(0, 0, days-1)),
		People:    people,
		Settings: model.OrganizationSettings{
			OrganizationID:   "org-1",
			OptimizationMode: model.ModeRatio,
			DefaultDaysBase:  11,
			DefaultDaysHome:  3,
		},
	}
	result, err := roster.Generate(cfg)
	require.NoError(t, err)
	return &RosterPlan{Result: result, Config: cfg}
}

func TestSaveRoster_UpsertsAllEntries(t *testing.T) {
	store := &mockPresenceStore{}
	plan := planForPeople(t, 3, 5)

	saved, err := SaveRoster(context.Background(), store, zap.NewNop(), "org-1", plan)
	require.NoError(t, err)

	assert.Equal(t, 15, saved.RecordsUpserted)
	assert.Equal(t, 3, saved.PeopleUpdated)
	assert.Len(t, store.upserted, 15)

	for _, r := range store.upserted {
		assert.Equal(t, "org-1", r.OrganizationID)
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Date)
	}

	// Each person's availability map carries one entry per day.
	require.Len(t, store.updatedPeople, 3)
	for personID, entries := range store.updatedPeople {
		assert.Len(t, entries, 5, personID)
	}
}

func TestSaveRoster_AppliesOverridesBeforePersisting(t *testing.T) {
	store := &mockPresenceStore{}
	plan := planForPeople(t, 1, 3)

	overrides := roster.NewOverrideSet()
	overrides.Set("p01", "2025-03-02", roster.Override{Status: model.EntryHome})
	plan.Config.Overrides = overrides

	_, err := SaveRoster(context.Background(), store, zap.NewNop(), "org-1", plan)
	require.NoError(t, err)

	var overridden *db.DailyPresence
	for i := range store.upserted {
		if store.upserted[i].Date == "2025-03-02" {
			overridden = &store.upserted[i]
		}
	}
	require.NotNil(t, overridden)
	assert.Equal(t, "home", overridden.Status)
	assert.False(t, overridden.IsAvailable)
	assert.Equal(t, string(model.SourceManual), overridden.Source)
}

func TestSaveRoster_SavedEntriesResolveConsistently(t *testing.T) {
	store := &mockPresenceStore{}
	plan := planForPeople(t, 1, 14)

	_, err := SaveRoster(context.Background(), store, zap.NewNop(), "org-1", plan)
	require.NoError(t, err)

	// Re-resolving against the updated person record must agree with what
	// was persisted for every date.
	entries := store.updatedPeople["p01"]
	require.NotEmpty(t, entries)
	person := toModelPerson(db.Person{ID: "p01", Active: true, Availability: entries})

	for date, saved := range entries {
		eff := availability.Resolve(availability.Query{Person: &person, Date: date})
		assert.Equal(t, model.NormalizeStatus(saved.Status), eff.Status, date)
		assert.Equal(t, saved.IsAvailable, eff.IsAvailable, date)
	}
}

func TestSaveRoster_BatchesPerPersonUpdates(t *testing.T) {
	store := &mockPresenceStore{}
	// 25 people: batches of 10, 10 and 5.
	plan := planForPeople(t, 25, 2)

	saved, err := SaveRoster(context.Background(), store, zap.NewNop(), "org-1", plan)
	require.NoError(t, err)

	assert.Equal(t, 25, saved.PeopleUpdated)
	assert.Len(t, store.updatedPeople, 25)
	// Concurrency never exceeds the batch size.
	assert.LessOrEqual(t, store.maxInFlight, 10)
}

func TestSaveRoster_UpsertErrorAborts(t *testing.T) {
	store := &mockPresenceStore{upsertErr: fmt.Errorf("deadlock detected")}
	plan := planForPeople(t, 2, 3)

	_, err := SaveRoster(context.Background(), store, zap.NewNop(), "org-1", plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert daily presence")
	assert.Empty(t, store.updatedPeople, "no availability updates after a failed upsert")
}

func TestSaveRoster_UpdateErrorSurfaces(t *testing.T) {
	store := &mockPresenceStore{updateErrFor: "p02"}
	plan := planForPeople(t, 3, 2)

	_, err := SaveRoster(context.Background(), store, zap.NewNop(), "org-1", plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update person availability")
}

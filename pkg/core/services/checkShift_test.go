package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/db"
)

func dbShift(id string, start time.Time, hours int, personIDs ...string) db.Shift {
	return db.Shift{
		ID:                id,
		OrganizationID:    "org-1",
		StartAt:           start,
		EndAt:             start.Add(time.Duration(hours) * time.Hour),
		AssignedPersonIDs: personIDs,
	}
}

func TestCheckShiftAssignment_NoConflicts(t *testing.T) {
	store := testStore()
	day := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	store.shifts = []db.Shift{dbShift("s1", day, 8)}

	conflicts, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p1", "s1")
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestCheckShiftAssignment_AbsenceBlocksAssignment(t *testing.T) {
	store := testStore()
	day := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	store.shifts = []db.Shift{dbShift("s1", day, 8)}
	store.absences = []db.Absence{
		{PersonID: "p1", StartDate: "2025-03-05", EndDate: "2025-03-05", Reason: "vacation"},
	}

	conflicts, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p1", "s1")
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	assert.Equal(t, roster.ConflictUnavailable, conflicts[0].Type)
	assert.Equal(t, "at home (vacation)", conflicts[0].Reason)
}

func TestCheckShiftAssignment_OrgMinRestRule(t *testing.T) {
	store := testStore()
	day := time.Date(2025, 3, 5, 6, 0, 0, 0, time.UTC)
	store.shifts = []db.Shift{
		dbShift("s0", day.Add(-16*time.Hour), 8, "p1"), // ends 8h before s1
		dbShift("s1", day, 8),
	}
	store.scheduling = []db.SchedulingConstraint{
		{ID: "sc1", OrganizationID: "org-1", Kind: "min_rest", MinRestHours: 10},
	}

	conflicts, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p1", "s1")
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	assert.Equal(t, roster.ConflictInsufficientRest, conflicts[0].Type)
	assert.Contains(t, conflicts[0].Reason, "requires 10h0m0s")
}

func TestCheckShiftAssignment_OverlappingShift(t *testing.T) {
	store := testStore()
	day := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	store.shifts = []db.Shift{
		dbShift("s1", day, 8),
		dbShift("s2", day.Add(4*time.Hour), 8, "p1"),
	}

	conflicts, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p1", "s1")
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	assert.Equal(t, roster.ConflictOverlap, conflicts[0].Type)
	assert.Contains(t, conflicts[0].Reason, "s2")
}

func TestCheckShiftAssignment_ForbiddenPair(t *testing.T) {
	store := testStore()
	store.people[0].CustomFields = map[string]string{"qualification": "senior"}
	store.people[1].CustomFields = map[string]string{"unit": "north"}
	store.constraints = []db.InterPersonConstraint{
		{ID: "c1", Kind: "forbidden_together", FieldA: "qualification", ValueA: "senior", FieldB: "unit", ValueB: "north"},
	}

	day := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	store.shifts = []db.Shift{dbShift("s1", day, 8, "p2")}

	conflicts, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p1", "s1")
	require.NoError(t, err)

	require.Len(t, conflicts, 1)
	assert.Equal(t, roster.ConflictForbiddenPair, conflicts[0].Type)
	assert.Contains(t, conflicts[0].Reason, "Ben Okafor")
}

func TestCheckShiftAssignment_PersonNotFound(t *testing.T) {
	store := testStore()
	_, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p9", "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "person p9 not found")
}

func TestCheckShiftAssignment_ShiftNotFound(t *testing.T) {
	store := testStore()
	_, err := CheckShiftAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		"p1", "s9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shift s9 not found")
}

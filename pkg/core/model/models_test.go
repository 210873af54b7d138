package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTeamRotation_CycleLength(t *testing.T) {
	assert.Equal(t, 14, TeamRotation{DaysOnBase: 11, DaysAtHome: 3}.CycleLength())
	assert.Equal(t, 11, TeamRotation{DaysOnBase: 11, DaysAtHome: 0}.CycleLength())
	assert.Equal(t, 0, TeamRotation{DaysOnBase: 0, DaysAtHome: 3}.CycleLength())
	assert.Equal(t, 0, TeamRotation{DaysOnBase: -1, DaysAtHome: 3}.CycleLength())
	assert.Equal(t, 0, TeamRotation{DaysOnBase: 5, DaysAtHome: -1}.CycleLength())
}

func TestAbsence_IsApproved(t *testing.T) {
	assert.True(t, Absence{State: AbsenceApproved}.IsApproved())
	// Records from older revisions carry no state and count as approved.
	assert.True(t, Absence{}.IsApproved())
	assert.False(t, Absence{State: AbsencePending}.IsApproved())
	assert.False(t, Absence{State: AbsenceRejected}.IsApproved())
}

func TestHourlyBlockage_AppliesTo(t *testing.T) {
	person := &Person{ID: "p1", TeamID: "t1"}

	assert.True(t, HourlyBlockage{PersonID: "p1"}.AppliesTo(person))
	assert.False(t, HourlyBlockage{PersonID: "p2"}.AppliesTo(person))
	assert.True(t, HourlyBlockage{TeamID: "t1"}.AppliesTo(person))
	assert.False(t, HourlyBlockage{TeamID: "t2"}.AppliesTo(person))
	// Person scope wins over team scope when both are set.
	assert.False(t, HourlyBlockage{PersonID: "p2", TeamID: "t1"}.AppliesTo(person))
	assert.False(t, HourlyBlockage{}.AppliesTo(person))
}

func TestInterPersonConstraint_Matches(t *testing.T) {
	c := InterPersonConstraint{
		Kind:   InterPersonConstraintForbidden,
		FieldA: "qualification", ValueA: "senior",
		FieldB: "unit", ValueB: "north",
	}

	senior := &Person{CustomFields: map[string]string{"qualification": "senior"}}
	north := &Person{CustomFields: map[string]string{"unit": "north"}}
	neither := &Person{CustomFields: map[string]string{"unit": "south"}}

	assert.Equal(t, 1, c.Matches(senior))
	assert.Equal(t, 2, c.Matches(north))
	assert.Equal(t, 0, c.Matches(neither))
	assert.Equal(t, 0, c.Matches(&Person{}))
}

func TestShift_RestRequirement(t *testing.T) {
	assert.Equal(t, 8*time.Hour, Shift{}.RestRequirement())
	assert.Equal(t, 12*time.Hour, Shift{MinRestHours: 12}.RestRequirement())
	assert.Equal(t, 90*time.Minute, Shift{MinRestHours: 1.5}.RestRequirement())
}

func TestShift_Overlaps(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := Shift{Start: base, End: base.Add(8 * time.Hour)}

	overlapping := Shift{Start: base.Add(4 * time.Hour), End: base.Add(12 * time.Hour)}
	assert.True(t, a.Overlaps(overlapping))
	assert.True(t, overlapping.Overlaps(a))

	// Back-to-back shifts do not overlap (half-open intervals).
	adjacent := Shift{Start: base.Add(8 * time.Hour), End: base.Add(16 * time.Hour)}
	assert.False(t, a.Overlaps(adjacent))
}

func TestShift_IsAssigned(t *testing.T) {
	s := Shift{AssignedPersonIDs: []string{"p1", "p2"}}
	assert.True(t, s.IsAssigned("p1"))
	assert.False(t, s.IsAssigned("p3"))
}

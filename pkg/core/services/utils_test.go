package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/db"
)

func TestHistorySeeds_ConsecutiveRunCounted(t *testing.T) {
	seeds := historySeeds([]db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-25", Status: "base"},
		{PersonID: "p1", Date: "2025-02-26", Status: "base"},
		{PersonID: "p1", Date: "2025-02-27", Status: "base"},
	})

	seed, ok := seeds["p1"]
	require.True(t, ok)
	assert.Equal(t, "2025-02-27", seed.Date)
	assert.Equal(t, model.StatusBase, seed.Status)
	assert.Equal(t, 3, seed.Streak)
}

func TestHistorySeeds_GapBreaksStreak(t *testing.T) {
	seeds := historySeeds([]db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-20", Status: "base"},
		{PersonID: "p1", Date: "2025-02-26", Status: "base"},
		{PersonID: "p1", Date: "2025-02-27", Status: "base"},
	})

	assert.Equal(t, 2, seeds["p1"].Streak)
}

func TestHistorySeeds_StatusChangeBreaksStreak(t *testing.T) {
	seeds := historySeeds([]db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-25", Status: "base"},
		{PersonID: "p1", Date: "2025-02-26", Status: "home"},
		{PersonID: "p1", Date: "2025-02-27", Status: "home"},
	})

	seed := seeds["p1"]
	assert.Equal(t, model.StatusHome, seed.Status)
	assert.Equal(t, 2, seed.Streak)
}

func TestHistorySeeds_AwayTypesShareAStreak(t *testing.T) {
	// Leave and home both count as away-from-base for streak purposes.
	seeds := historySeeds([]db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-25", Status: "leave"},
		{PersonID: "p1", Date: "2025-02-26", Status: "home"},
	})

	seed := seeds["p1"]
	assert.Equal(t, model.StatusHome, seed.Status)
	assert.Equal(t, 2, seed.Streak)
}

func TestHistorySeeds_LegacyStatusesNormalized(t *testing.T) {
	seeds := historySeeds([]db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-26", Status: "on_base"},
		{PersonID: "p1", Date: "2025-02-27", Status: "present"},
	})

	seed := seeds["p1"]
	assert.Equal(t, model.StatusBase, seed.Status)
	assert.Equal(t, 2, seed.Streak)
}

func TestHistorySeeds_MultiplePeople(t *testing.T) {
	seeds := historySeeds([]db.DailyPresence{
		{PersonID: "p1", Date: "2025-02-27", Status: "base"},
		{PersonID: "p2", Date: "2025-02-26", Status: "home"},
		{PersonID: "p2", Date: "2025-02-27", Status: "home"},
	})

	require.Len(t, seeds, 2)
	assert.Equal(t, 1, seeds["p1"].Streak)
	assert.Equal(t, 2, seeds["p2"].Streak)
}

func TestConsecutiveDates(t *testing.T) {
	assert.True(t, consecutiveDates("2025-02-28", "2025-03-01"))
	assert.False(t, consecutiveDates("2025-02-27", "2025-03-01"))
	assert.False(t, consecutiveDates("bogus", "2025-03-01"))
}

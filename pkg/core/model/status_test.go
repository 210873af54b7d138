package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus_CurrentValues(t *testing.T) {
	assert.Equal(t, StatusBase, NormalizeStatus("base"))
	assert.Equal(t, StatusHome, NormalizeStatus("home"))
	assert.Equal(t, StatusUnavailable, NormalizeStatus("unavailable"))
	assert.Equal(t, StatusLeave, NormalizeStatus("leave"))
}

func TestNormalizeStatus_LegacyAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"present", StatusBase},
		{"on_base", StatusBase},
		{"away", StatusHome},
		{"off", StatusHome},
		{"absent", StatusLeave},
		{"vacation", StatusLeave},
		{"sick", StatusLeave},
		{"blocked", StatusUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.raw), "alias %q", tt.raw)
	}
}

func TestNormalizeStatus_CaseAndWhitespace(t *testing.T) {
	assert.Equal(t, StatusBase, NormalizeStatus("  Base "))
	assert.Equal(t, StatusLeave, NormalizeStatus("VACATION"))
}

func TestNormalizeStatus_UnknownSurfacesAsNotDefined(t *testing.T) {
	// Unknown strings must never be silently dropped; they resolve to
	// not_defined so the record surfaces for clarification.
	assert.Equal(t, StatusNotDefined, NormalizeStatus("holidayz"))
	assert.Equal(t, StatusNotDefined, NormalizeStatus(""))
}

func TestSource_IsManual(t *testing.T) {
	assert.True(t, SourceManual.IsManual())
	assert.True(t, SourceLastManual.IsManual())
	assert.False(t, SourceAbsence.IsManual())
	assert.False(t, SourceRotation.IsManual())
	assert.False(t, SourceGenerator.IsManual())
	assert.False(t, SourceDefault.IsManual())
}

func TestEntryStatus_DayStatus(t *testing.T) {
	assert.Equal(t, StatusBase, EntryBase.DayStatus())
	assert.Equal(t, StatusBase, EntryArrival.DayStatus())
	assert.Equal(t, StatusBase, EntryDeparture.DayStatus())
	assert.Equal(t, StatusHome, EntryHome.DayStatus())
	assert.Equal(t, StatusUnavailable, EntryUnavailable.DayStatus())
	assert.Equal(t, StatusNotDefined, EntryStatus("bogus").DayStatus())
}

func TestStatus_IsAvailableDefault(t *testing.T) {
	assert.True(t, StatusBase.IsAvailableDefault())
	assert.False(t, StatusHome.IsAvailableDefault())
	assert.False(t, StatusLeave.IsAvailableDefault())
	assert.False(t, StatusUnavailable.IsAvailableDefault())
}

func TestOptimizationMode_IsValid(t *testing.T) {
	assert.True(t, ModeRatio.IsValid())
	assert.True(t, ModeMinStaff.IsValid())
	assert.True(t, ModeTasks.IsValid())
	assert.False(t, OptimizationMode("fastest").IsValid())
	assert.False(t, OptimizationMode("").IsValid())
}

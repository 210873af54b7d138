package model

import "strings"

// Status is a person's day-level presence status.
type Status string

const (
	StatusBase        Status = "base"
	StatusHome        Status = "home"
	StatusUnavailable Status = "unavailable"
	StatusLeave       Status = "leave"
	StatusNotDefined  Status = "not_defined"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBase, StatusHome, StatusUnavailable, StatusLeave, StatusNotDefined:
		return true
	}
	return false
}

// legacyStatusAliases maps status strings written by older engine revisions
// to their current equivalents.
var legacyStatusAliases = map[string]Status{
	"present":  StatusBase,
	"on_base":  StatusBase,
	"away":     StatusHome,
	"off":      StatusHome,
	"absent":   StatusLeave,
	"vacation": StatusLeave,
	"sick":     StatusLeave,
	"blocked":  StatusUnavailable,
}

// NormalizeStatus maps a raw persisted status string to a known Status.
// Unrecognized values normalize to StatusNotDefined so they surface for
// clarification instead of being silently dropped.
func NormalizeStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	if alias, ok := legacyStatusAliases[string(s)]; ok {
		return alias
	}
	return StatusNotDefined
}

// Source identifies which resolution layer produced an availability entry.
type Source string

const (
	SourceManual           Source = "manual"
	SourceLastManual       Source = "last_manual"
	SourceAbsence          Source = "absence"
	SourceRotation         Source = "rotation"
	SourcePersonalRotation Source = "personal_rotation"
	SourceDefault          Source = "default"
	SourceGenerator        Source = "generator"
)

// IsManual reports whether the source represents a user-entered entry,
// which outranks every other resolution layer.
func (s Source) IsManual() bool {
	return s == SourceManual || s == SourceLastManual
}

// EntryStatus is the status carried by a generated roster entry. It extends
// the day-level Status set with the partial-day transition labels.
type EntryStatus string

const (
	EntryBase        EntryStatus = "base"
	EntryHome        EntryStatus = "home"
	EntryUnavailable EntryStatus = "unavailable"
	EntryArrival     EntryStatus = "arrival"
	EntryDeparture   EntryStatus = "departure"
)

// DayStatus collapses a roster entry status to its day-level equivalent.
// Arrival and departure are partial-day refinements of base.
func (e EntryStatus) DayStatus() Status {
	switch e {
	case EntryBase, EntryArrival, EntryDeparture:
		return StatusBase
	case EntryHome:
		return StatusHome
	case EntryUnavailable:
		return StatusUnavailable
	}
	return StatusNotDefined
}

// IsAvailableDefault reports whether a day with this status counts as
// available when no explicit flag was recorded. Only on-base days do.
func (s Status) IsAvailableDefault() bool {
	return s == StatusBase
}

// OptimizationMode selects the roster generation policy.
type OptimizationMode string

const (
	ModeRatio    OptimizationMode = "ratio"
	ModeMinStaff OptimizationMode = "min_staff"
	ModeTasks    OptimizationMode = "tasks"
)

func (m OptimizationMode) IsValid() bool {
	return m == ModeRatio || m == ModeMinStaff || m == ModeTasks
}

package roster

import (
	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// History seeding limits: the latest persisted record within
// HistoryLookbackDays before the window may seed a person's streak, but
// only when its gap to the window start is at most MaxHistoryGapDays.
const (
	HistoryLookbackDays = 45
	MaxHistoryGapDays   = 3
)

// DefaultArrivalHour and DefaultDepartureHour are used for arrival and
// departure entries when the organization does not configure them.
const (
	DefaultArrivalHour   = "08:00"
	DefaultDepartureHour = "14:00"
)

// DayPhase is the per-day position within a stay, computed once during
// generation and carried on each entry so consumers never re-derive it.
type DayPhase string

const (
	PhaseHome     DayPhase = "home"
	PhaseArriving DayPhase = "arriving"
	PhasePresent  DayPhase = "present"
	PhaseLeaving  DayPhase = "leaving"
)

// Entry is one generated (person, date) assignment.
type Entry struct {
	PersonID  string
	Date      string
	Status    model.EntryStatus
	StartTime string
	EndTime   string
	Source    model.Source
	Phase     DayPhase
}

// HistorySeed carries a person's last known persisted status before the
// generation window, used to continue an in-progress streak.
type HistorySeed struct {
	Date   string
	Status model.Status
	Streak int
}

// OverrideKey is the composite key for manual overrides. A struct key
// avoids the ambiguity of concatenated string keys when IDs themselves
// contain separators.
type OverrideKey struct {
	PersonID string
	Date     string
}

// Override is a user-chosen correction applied over generator output
// during the preview/edit phase, before persistence.
type Override struct {
	Status    model.EntryStatus
	StartTime string
	EndTime   string
}

// OverrideSet is the in-memory, not-yet-persisted override map.
type OverrideSet struct {
	entries map[OverrideKey]Override
}

// NewOverrideSet returns an empty override set.
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{entries: make(map[OverrideKey]Override)}
}

// Set records an override for a person and date, replacing any previous
// override for the same key.
func (s *OverrideSet) Set(personID, date string, o Override) {
	s.entries[OverrideKey{PersonID: personID, Date: date}] = o
}

// Get returns the override for a person and date, if any.
func (s *OverrideSet) Get(personID, date string) (Override, bool) {
	if s == nil || s.entries == nil {
		return Override{}, false
	}
	o, ok := s.entries[OverrideKey{PersonID: personID, Date: date}]
	return o, ok
}

// Len returns the number of overrides in the set.
func (s *OverrideSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// GenerationConfig carries every input of a generation run. Generation is
// pure over this config: it performs no external reads or writes, so a
// preview can be regenerated safely any number of times.
type GenerationConfig struct {
	StartDate string
	EndDate   string

	People      []model.Person
	Teams       []model.Team
	Tasks       []model.TaskTemplate
	Settings    model.OrganizationSettings
	Rotations   []model.TeamRotation
	InterPerson []model.InterPersonConstraint
	Absences    []model.Absence
	Blockages   []model.HourlyBlockage

	// History maps person ID to the seed derived from the lookback query.
	History map[string]HistorySeed

	// DaysBase/DaysHome override the organization's default cadence when
	// positive.
	DaysBase int
	DaysHome int

	// MinStaff overrides the organization's staffing floor when positive.
	MinStaff int

	Overrides *OverrideSet

	Engine availability.EngineVersion
}

// Cadence returns the effective rotation cadence for the run.
func (c GenerationConfig) Cadence() (daysBase, daysHome int) {
	daysBase, daysHome = c.DaysBase, c.DaysHome
	if daysBase <= 0 {
		daysBase = c.Settings.DefaultDaysBase
	}
	if daysHome <= 0 {
		daysHome = c.Settings.DefaultDaysHome
	}
	return daysBase, daysHome
}

// StaffingFloor returns the effective minimum-staffing floor for the run.
func (c GenerationConfig) StaffingFloor() int {
	if c.MinStaff > 0 {
		return c.MinStaff
	}
	return c.Settings.MinStaff
}

// ArrivalHour returns the configured arrival hour for arrival entries.
func (c GenerationConfig) ArrivalHour() string {
	if c.Settings.ArrivalHour != "" {
		return c.Settings.ArrivalHour
	}
	return DefaultArrivalHour
}

// DepartureHour returns the configured departure hour, used as the end
// time of departure entries that do not pin their own.
func (c GenerationConfig) DepartureHour() string {
	if c.Settings.DepartureHour != "" {
		return c.Settings.DepartureHour
	}
	return DefaultDepartureHour
}

// UnfulfilledConstraint reports a constraint the generator could not
// honor. PersonID is empty for day-level staffing misses.
type UnfulfilledConstraint struct {
	PersonID string
	Date     string
	Reason   string
}

// ConstraintStats summarizes how many hard-constraint checks were met.
type ConstraintStats struct {
	Met        int
	Total      int
	Percentage float64
}

// Stats carries generation statistics surfaced to the caller.
type Stats struct {
	Constraints ConstraintStats
	Days        int
	People      int

	// PresentPerDay maps date to the number of people on base that day.
	PresentPerDay map[string]int
}

// Result is the full output of one generation run. Problems never abort a
// run once configuration is valid; they accumulate in Warnings and
// Unfulfilled so the caller decides whether to block the save.
type Result struct {
	Roster         []Entry
	PersonStatuses map[string]map[string]model.Status
	Warnings       []string
	Unfulfilled    []UnfulfilledConstraint
	Stats          Stats
}

package model

import "time"

// Person represents a tracked member of the organization.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	TeamID    string
	Roles     []string
	Active    bool

	// CustomFields holds free-form attributes (e.g. qualification, unit)
	// referenced by inter-person constraints.
	CustomFields map[string]string

	// Availability is the sparse per-date availability map. Entries are the
	// authoritative historical record once persisted; they are created by
	// manual edits, by the generator's save step, or by absence
	// consolidation, and only removed by explicit cleanup.
	Availability map[string]AvailabilityEntry
}

// AvailabilityEntry is a persisted per-date availability record.
type AvailabilityEntry struct {
	Status            Status
	IsAvailable       bool
	StartHour         string
	EndHour           string
	Source            Source
	HomeStatusType    string
	UnavailableBlocks []Block
}

// Block is a partial-day unavailability window layered onto a day.
type Block struct {
	StartHour string
	EndHour   string
	Reason    string
}

// Team groups people under a shared rotation cadence.
type Team struct {
	ID   string
	Name string
}

// TeamRotation defines a presence cadence projected from a start date.
// A rotation with a non-empty PersonID is a personal rotation and, under
// the current engine, outranks the person's team rotation.
type TeamRotation struct {
	ID         string
	TeamID     string
	PersonID   string
	StartDate  string
	DaysOnBase int
	DaysAtHome int
}

// CycleLength returns the full cadence length, or 0 when the cadence is
// unusable (non-positive segments).
func (r TeamRotation) CycleLength() int {
	if r.DaysOnBase <= 0 || r.DaysAtHome < 0 {
		return 0
	}
	return r.DaysOnBase + r.DaysAtHome
}

// IsPersonal reports whether the rotation is scoped to a single person.
func (r TeamRotation) IsPersonal() bool {
	return r.PersonID != ""
}

// Absence approval states. Records persisted by older revisions carry no
// state at all; those are treated as approved.
const (
	AbsenceApproved = "approved"
	AbsencePending  = "pending"
	AbsenceRejected = "rejected"
)

// Absence is a person-scoped leave request over an inclusive date range,
// optionally bounded to part of the day.
type Absence struct {
	ID        string
	PersonID  string
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Reason    string
	State     string
}

// IsApproved reports whether the absence should affect resolution.
func (a Absence) IsApproved() bool {
	return a.State == "" || a.State == AbsenceApproved
}

// Covers reports whether the absence covers the given date.
func (a Absence) Covers(date string) bool {
	return DateCovers(date, a.StartDate, a.EndDate)
}

// IsFullDay reports whether the absence has no narrowing time window.
func (a Absence) IsFullDay() bool {
	return IsFullDay(a.StartTime, a.EndTime)
}

// HourlyBlockage is a dated or recurring partial-day unavailability window
// scoped to a person or a whole team. Recurring blockages carry an RRULE
// (e.g. "FREQ=WEEKLY;BYDAY=TU") instead of a date.
type HourlyBlockage struct {
	ID        string
	PersonID  string
	TeamID    string
	Date      string
	RRule     string
	StartTime string
	EndTime   string
	Reason    string
}

// AppliesTo reports whether the blockage is scoped to the given person.
func (b HourlyBlockage) AppliesTo(p *Person) bool {
	if b.PersonID != "" {
		return b.PersonID == p.ID
	}
	if b.TeamID != "" {
		return b.TeamID == p.TeamID
	}
	return false
}

// SchedulingConstraintMinRest marks an organization-level minimum-rest
// rule applied to shifts that do not configure their own.
const SchedulingConstraintMinRest = "min_rest"

// SchedulingConstraint is a declarative per-organization scheduling rule.
type SchedulingConstraint struct {
	ID           string
	Kind         string
	MinRestHours float64
}

// MinRestFloor returns the strictest organization-level minimum rest among
// the constraints. The boolean is false when no min-rest rule is defined.
func MinRestFloor(constraints []SchedulingConstraint) (time.Duration, bool) {
	var hours float64
	for _, c := range constraints {
		if c.Kind == SchedulingConstraintMinRest && c.MinRestHours > hours {
			hours = c.MinRestHours
		}
	}
	if hours <= 0 {
		return 0, false
	}
	return time.Duration(hours * float64(time.Hour)), true
}

// InterPersonConstraintForbidden marks two attribute conditions that must
// never be co-assigned to the same shift.
const InterPersonConstraintForbidden = "forbidden_together"

// InterPersonConstraint forbids co-assignment of people matching two
// custom-field conditions.
type InterPersonConstraint struct {
	ID     string
	Kind   string
	FieldA string
	ValueA string
	FieldB string
	ValueB string
}

// Matches reports which side of the constraint, if any, the person
// matches: 1 for the A condition, 2 for the B condition, 0 for neither.
func (c InterPersonConstraint) Matches(p *Person) int {
	if p.CustomFields[c.FieldA] == c.ValueA {
		return 1
	}
	if p.CustomFields[c.FieldB] == c.ValueB {
		return 2
	}
	return 0
}

// SegmentRecurrence describes when a task segment is active.
type SegmentRecurrence string

const (
	SegmentDaily    SegmentRecurrence = "daily"
	SegmentWeekly   SegmentRecurrence = "weekly"
	SegmentSpecific SegmentRecurrence = "specific_date"
)

// TaskSegment is a staffed time window within a task template. Weekly
// segments may carry an RRule in place of a plain weekday.
type TaskSegment struct {
	Recurrence     SegmentRecurrence
	Weekday        time.Weekday
	Date           string
	RRule          string
	StartTime      string
	EndTime        string
	RequiredPeople int
	RequiredRoles  []string
}

// TaskTemplate defines a recurring task and its staffing segments.
type TaskTemplate struct {
	ID       string
	Name     string
	Segments []TaskSegment
}

// DefaultMinRestHours is the rest requirement applied when a shift does
// not configure its own.
const DefaultMinRestHours = 8.0

// Shift is a concrete task instance with assigned personnel.
type Shift struct {
	ID                string
	TaskID            string
	Start             time.Time
	End               time.Time
	AssignedPersonIDs []string
	Cancelled         bool
	MinRestHours      float64
}

// RestRequirement returns the shift's configured minimum rest, falling
// back to the default.
func (s Shift) RestRequirement() time.Duration {
	hours := s.MinRestHours
	if hours <= 0 {
		hours = DefaultMinRestHours
	}
	return time.Duration(hours * float64(time.Hour))
}

// Overlaps reports whether two shift intervals intersect (half-open).
func (s Shift) Overlaps(other Shift) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// IsAssigned reports whether the person is assigned to this shift.
func (s Shift) IsAssigned(personID string) bool {
	for _, id := range s.AssignedPersonIDs {
		if id == personID {
			return true
		}
	}
	return false
}

// OrganizationSettings carries the per-organization generation defaults.
type OrganizationSettings struct {
	OrganizationID   string
	OptimizationMode OptimizationMode
	DefaultDaysBase  int
	DefaultDaysHome  int
	ArrivalHour      string
	DepartureHour    string
	MinStaff         int
	EngineVersion    string
}

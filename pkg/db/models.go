package db

import "time"

// Person represents a database person record. The Availability column is
// the sparse per-date map mirrored from daily_presence at save time.
type Person struct {
	ID             string
	OrganizationID string
	FirstName      string
	LastName       string
	TeamID         string
	Roles          []string
	Active         bool
	CustomFields   map[string]string
	Availability   map[string]AvailabilityEntry
}

// AvailabilityEntry is one per-date entry of a person's sparse
// availability map.
type AvailabilityEntry struct {
	Status         string `json:"status"`
	IsAvailable    bool   `json:"isAvailable"`
	StartHour      string `json:"startHour,omitempty"`
	EndHour        string `json:"endHour,omitempty"`
	Source         string `json:"source"`
	HomeStatusType string `json:"homeStatusType,omitempty"`
}

// Team represents a database team record.
type Team struct {
	ID             string
	OrganizationID string
	Name           string
}

// TeamRotation represents a database rotation record. PersonID is empty
// for team rotations and set for personal rotations.
type TeamRotation struct {
	ID             string
	OrganizationID string
	TeamID         string
	PersonID       string
	StartDate      string
	DaysOnBase     int
	DaysAtHome     int
}

// Absence represents a database absence record.
type Absence struct {
	ID             string
	OrganizationID string
	PersonID       string
	StartDate      string
	EndDate        string
	StartTime      string
	EndTime        string
	Reason         string
	State          string
}

// HourlyBlockage represents a database hourly blockage record.
type HourlyBlockage struct {
	ID             string
	OrganizationID string
	PersonID       string
	TeamID         string
	Date           string
	RRule          string
	StartTime      string
	EndTime        string
	Reason         string
}

// TaskSegment represents one staffed segment row of a task template.
type TaskSegment struct {
	ID             string
	TaskID         string
	Recurrence     string
	Weekday        int
	Date           string
	RRule          string
	StartTime      string
	EndTime        string
	RequiredPeople int
	RequiredRoles  []string
}

// TaskTemplate represents a database task template record.
type TaskTemplate struct {
	ID             string
	OrganizationID string
	Name           string
	Segments       []TaskSegment
}

// SchedulingConstraint represents a database scheduling rule record.
type SchedulingConstraint struct {
	ID             string
	OrganizationID string
	Kind           string
	MinRestHours   float64
}

// InterPersonConstraint represents a database inter-person constraint
// record.
type InterPersonConstraint struct {
	ID             string
	OrganizationID string
	Kind           string
	FieldA         string
	ValueA         string
	FieldB         string
	ValueB         string
}

// DailyPresence represents one persisted per-person-per-date availability
// record. The upsert conflict key is (organization, person, date).
type DailyPresence struct {
	ID             string
	OrganizationID string
	PersonID       string
	Date           string
	Status         string
	IsAvailable    bool
	StartHour      string
	EndHour        string
	Source         string
	HomeStatusType string
}

// Shift represents a database shift record: a task instance with
// timestamps and assigned personnel.
type Shift struct {
	ID                string
	OrganizationID    string
	TaskID            string
	StartAt           time.Time
	EndAt             time.Time
	AssignedPersonIDs []string
	Cancelled         bool
	MinRestHours      float64
}

// OrganizationSettings represents the per-organization settings record.
type OrganizationSettings struct {
	OrganizationID   string
	OptimizationMode string
	DefaultDaysBase  int
	DefaultDaysHome  int
	ArrivalHour      string
	DepartureHour    string
	MinStaff         int
	EngineVersion    string
}

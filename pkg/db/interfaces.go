package db

import "context"

// OrganizationStore defines organization-level read operations.
type OrganizationStore interface {
	GetOrganizationSettings(ctx context.Context, orgID string) (*OrganizationSettings, error)
}

// PeopleStore defines person and team read operations.
type PeopleStore interface {
	GetPeople(ctx context.Context, orgID string) ([]Person, error)
	GetTeams(ctx context.Context, orgID string) ([]Team, error)
}

// ScheduleStore defines read operations for the records that feed roster
// generation.
type ScheduleStore interface {
	GetTeamRotations(ctx context.Context, orgID string) ([]TeamRotation, error)
	GetAbsences(ctx context.Context, orgID, startDate, endDate string) ([]Absence, error)
	GetHourlyBlockages(ctx context.Context, orgID string) ([]HourlyBlockage, error)
	GetTaskTemplates(ctx context.Context, orgID string) ([]TaskTemplate, error)
	GetInterPersonConstraints(ctx context.Context, orgID string) ([]InterPersonConstraint, error)
	GetSchedulingConstraints(ctx context.Context, orgID string) ([]SchedulingConstraint, error)
}

// PresenceStore defines the daily presence history operations.
type PresenceStore interface {
	GetPresenceRange(ctx context.Context, orgID, startDate, endDate string) ([]DailyPresence, error)
	UpsertDailyPresence(ctx context.Context, records []DailyPresence) error
	UpdatePersonAvailability(ctx context.Context, orgID, personID string, entries map[string]AvailabilityEntry) error
}

// ShiftStore defines shift read operations for the assignment-time
// conflict checks.
type ShiftStore interface {
	GetShifts(ctx context.Context, orgID string) ([]Shift, error)
}

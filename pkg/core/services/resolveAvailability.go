package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/internal/config"
	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// ResolveAvailabilityStore defines the database operations needed to
// resolve effective availability.
type ResolveAvailabilityStore interface {
	db.OrganizationStore
	db.PeopleStore
	db.ScheduleStore
}

// DayAvailability is one resolved (person, date) answer, with the display
// labels a caller renders directly.
type DayAvailability struct {
	PersonID  string
	Date      string
	Effective *availability.Effective
	Label     string
}

// ResolveAvailability resolves a person's effective availability for each
// date in [startDate, endDate]. The resolution is pure and read-only, so
// callers can use it on render paths without side effects.
func ResolveAvailability(
	ctx context.Context,
	store ResolveAvailabilityStore,
	cfg *config.Config,
	logger *zap.Logger,
	personID, startDate, endDate string,
) ([]DayAvailability, error) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	settingsRecord, err := store.GetOrganizationSettings(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization settings: %w", err)
	}
	settings := toModelSettings(settingsRecord)
	if cfg.EngineVersion != "" {
		settings.EngineVersion = cfg.EngineVersion
	}
	engine := availability.ParseEngineVersion(settings.EngineVersion)

	peopleRecords, err := store.GetPeople(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	var person *model.Person
	for _, r := range peopleRecords {
		if r.ID == personID {
			p := toModelPerson(r)
			person = &p
			break
		}
	}
	if person == nil {
		return nil, fmt.Errorf("person %s not found", personID)
	}

	rotationRecords, err := store.GetTeamRotations(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team rotations: %w", err)
	}

	absenceRecords, err := store.GetAbsences(ctx, cfg.OrganizationID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	blockageRecords, err := store.GetHourlyBlockages(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly blockages: %w", err)
	}

	rotations := toModelRotations(rotationRecords)
	absences := toModelAbsences(absenceRecords)
	blockages := toModelBlockages(blockageRecords)

	logger.Debug("Resolving availability",
		zap.String("person", personID),
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.String("engine", string(engine)))

	days := make([]DayAvailability, 0, model.DaysBetween(start, end)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := model.FormatDate(day)
		eff := availability.Resolve(availability.Query{
			Person:    person,
			Date:      date,
			Rotations: rotations,
			Absences:  absences,
			Blockages: blockages,
			Engine:    engine,
		})
		days = append(days, DayAvailability{
			PersonID:  personID,
			Date:      date,
			Effective: eff,
			Label:     availabilityLabel(eff),
		})
	}
	return days, nil
}

// availabilityLabel renders the short display label for a resolved day.
func availabilityLabel(eff *availability.Effective) string {
	switch eff.Status {
	case model.StatusBase:
		switch {
		case eff.IsArrivalDay():
			return fmt.Sprintf("arrives at %s", eff.StartHour)
		case eff.IsDepartureDay():
			return fmt.Sprintf("leaves at %s", eff.EndHour)
		default:
			return "on base"
		}
	case model.StatusHome:
		if eff.HomeStatusType != "" {
			return fmt.Sprintf("at home (%s)", eff.HomeStatusType)
		}
		return "at home"
	case model.StatusLeave:
		if eff.HomeStatusType != "" {
			return fmt.Sprintf("on leave (%s)", eff.HomeStatusType)
		}
		return "on leave"
	case model.StatusUnavailable:
		return "unavailable"
	}
	return "not defined"
}

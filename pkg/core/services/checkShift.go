package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rotaplan/rotaplan/internal/config"
	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// CheckShiftStore defines the database operations needed to check a
// candidate shift assignment.
type CheckShiftStore interface {
	db.OrganizationStore
	db.PeopleStore
	db.ScheduleStore
	db.ShiftStore
}

// CheckShiftAssignment runs every conflict check for assigning a person
// to a shift: rest since their previous shift, overlaps with their other
// shifts, forbidden-together constraints against people already on the
// shift, and resolved availability for the shift window. An empty result
// means the assignment needs no confirmation.
func CheckShiftAssignment(
	ctx context.Context,
	store CheckShiftStore,
	cfg *config.Config,
	logger *zap.Logger,
	personID, shiftID string,
) ([]roster.Conflict, error) {
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
	people := make(map[string]*model.Person, len(peopleRecords))
	for _, r := range peopleRecords {
		p := toModelPerson(r)
		people[p.ID] = &p
	}
	person, ok := people[personID]
	if !ok {
		return nil, fmt.Errorf("person %s not found", personID)
	}

	shiftRecords, err := store.GetShifts(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}
	shifts := toModelShifts(shiftRecords)
	var shift *model.Shift
	for i := range shifts {
		if shifts[i].ID == shiftID {
			shift = &shifts[i]
			break
		}
	}
	if shift == nil {
		return nil, fmt.Errorf("shift %s not found", shiftID)
	}
	date := model.FormatDate(shift.Start)

	rotationRecords, err := store.GetTeamRotations(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team rotations: %w", err)
	}
	absenceRecords, err := store.GetAbsences(ctx, cfg.OrganizationID, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}
	blockageRecords, err := store.GetHourlyBlockages(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hourly blockages: %w", err)
	}
	constraintRecords, err := store.GetInterPersonConstraints(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inter-person constraints: %w", err)
	}
	schedulingRecords, err := store.GetSchedulingConstraints(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduling constraints: %w", err)
	}

	eff := availability.Resolve(availability.Query{
		Person:    person,
		Date:      date,
		Rotations: toModelRotations(rotationRecords),
		Absences:  toModelAbsences(absenceRecords),
		Blockages: toModelBlockages(blockageRecords),
		Engine:    engine,
	})

	conflicts := roster.CheckAssignment(roster.AssignmentCheck{
		Person:      person,
		Shift:       *shift,
		OtherShifts: shifts,
		People:      people,
		InterPerson: toModelConstraints(constraintRecords),
		Scheduling:  toModelSchedulingConstraints(schedulingRecords),
		Effective:   eff,
	})

	logger.Info("Assignment checked",
		zap.String("person", personID),
		zap.String("shift", shiftID),
		zap.Int("conflicts", len(conflicts)))

	return conflicts, nil
}

package services

import (
	"time"

	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// Converters from flat store records to core model types. The core never
// sees store records directly.

func toModelPerson(p db.Person) model.Person {
	person := model.Person{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		TeamID:       p.TeamID,
		Roles:        append([]string(nil), p.Roles...),
		Active:       p.Active,
		CustomFields: p.CustomFields,
		Availability: make(map[string]model.AvailabilityEntry, len(p.Availability)),
	}
	for date, e := range p.Availability {
		person.Availability[date] = model.AvailabilityEntry{
			Status:         model.NormalizeStatus(e.Status),
			IsAvailable:    e.IsAvailable,
			StartHour:      e.StartHour,
			EndHour:        e.EndHour,
			Source:         model.Source(e.Source),
			HomeStatusType: e.HomeStatusType,
		}
	}
	return person
}

func toModelPeople(records []db.Person) []model.Person {
	people := make([]model.Person, len(records))
	for i, r := range records {
		people[i] = toModelPerson(r)
	}
	return people
}

func toModelTeams(records []db.Team) []model.Team {
	teams := make([]model.Team, len(records))
	for i, r := range records {
		teams[i] = model.Team{ID: r.ID, Name: r.Name}
	}
	return teams
}

func toModelRotations(records []db.TeamRotation) []model.TeamRotation {
	rotations := make([]model.TeamRotation, len(records))
	for i, r := range records {
		rotations[i] = model.TeamRotation{
			ID:         r.ID,
			TeamID:     r.TeamID,
			PersonID:   r.PersonID,
			StartDate:  r.StartDate,
			DaysOnBase: r.DaysOnBase,
			DaysAtHome: r.DaysAtHome,
		}
	}
	return rotations
}

func toModelAbsences(records []db.Absence) []model.Absence {
	absences := make([]model.Absence, len(records))
	for i, r := range records {
		absences[i] = model.Absence{
			ID:        r.ID,
			PersonID:  r.PersonID,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Reason:    r.Reason,
			State:     r.State,
		}
	}
	return absences
}

func toModelBlockages(records []db.HourlyBlockage) []model.HourlyBlockage {
	blockages := make([]model.HourlyBlockage, len(records))
	for i, r := range records {
		blockages[i] = model.HourlyBlockage{
			ID:        r.ID,
			PersonID:  r.PersonID,
			TeamID:    r.TeamID,
			Date:      r.Date,
			RRule:     r.RRule,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Reason:    r.Reason,
		}
	}
	return blockages
}

func toModelTasks(records []db.TaskTemplate) []model.TaskTemplate {
	tasks := make([]model.TaskTemplate, len(records))
	for i, r := range records {
		task := model.TaskTemplate{ID: r.ID, Name: r.Name}
		for _, s := range r.Segments {
			task.Segments = append(task.Segments, model.TaskSegment{
				Recurrence:     model.SegmentRecurrence(s.Recurrence),
				Weekday:        time.Weekday(s.Weekday),
				Date:           s.Date,
				RRule:          s.RRule,
				StartTime:      s.StartTime,
				EndTime:        s.EndTime,
				RequiredPeople: s.RequiredPeople,
				RequiredRoles:  append([]string(nil), s.RequiredRoles...),
			})
		}
		tasks[i] = task
	}
	return tasks
}

func toModelConstraints(records []db.InterPersonConstraint) []model.InterPersonConstraint {
	constraints := make([]model.InterPersonConstraint, len(records))
	for i, r := range records {
		constraints[i] = model.InterPersonConstraint{
			ID:     r.ID,
			Kind:   r.Kind,
			FieldA: r.FieldA,
			ValueA: r.ValueA,
			FieldB: r.FieldB,
			ValueB: r.ValueB,
		}
	}
	return constraints
}

func toModelSchedulingConstraints(records []db.SchedulingConstraint) []model.SchedulingConstraint {
	constraints := make([]model.SchedulingConstraint, len(records))
	for i, r := range records {
		constraints[i] = model.SchedulingConstraint{
			ID:           r.ID,
			Kind:         r.Kind,
			MinRestHours: r.MinRestHours,
		}
	}
	return constraints
}

func toModelSettings(r *db.OrganizationSettings) model.OrganizationSettings {
	return model.OrganizationSettings{
		OrganizationID:   r.OrganizationID,
		OptimizationMode: model.OptimizationMode(r.OptimizationMode),
		DefaultDaysBase:  r.DefaultDaysBase,
		DefaultDaysHome:  r.DefaultDaysHome,
		ArrivalHour:      r.ArrivalHour,
		DepartureHour:    r.DepartureHour,
		MinStaff:         r.MinStaff,
		EngineVersion:    r.EngineVersion,
	}
}

func toModelShifts(records []db.Shift) []model.Shift {
	shifts := make([]model.Shift, len(records))
	for i, r := range records {
		shifts[i] = model.Shift{
			ID:                r.ID,
			TaskID:            r.TaskID,
			Start:             r.StartAt,
			End:               r.EndAt,
			AssignedPersonIDs: append([]string(nil), r.AssignedPersonIDs...),
			Cancelled:         r.Cancelled,
			MinRestHours:      r.MinRestHours,
		}
	}
	return shifts
}

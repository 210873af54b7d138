package postgres

import (
	"context"
	"fmt"

	"github.com/rotaplan/rotaplan/pkg/db"
)

// GetTeamRotations retrieves all team and personal rotations for an
// organization.
func (d *DB) GetTeamRotations(ctx context.Context, orgID string) ([]db.TeamRotation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, COALESCE(team_id, ''), COALESCE(person_id, ''),
		       start_date::text, days_on_base, days_at_home
		FROM team_rotations
		WHERE organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team rotations: %w", err)
	}
	defer rows.Close()

	var rotations []db.TeamRotation
	for rows.Next() {
		var r db.TeamRotation
		if err := rows.Scan(&r.ID, &r.OrganizationID, &r.TeamID, &r.PersonID,
			&r.StartDate, &r.DaysOnBase, &r.DaysAtHome); err != nil {
			return nil, fmt.Errorf("failed to scan team rotation: %w", err)
		}
		rotations = append(rotations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rotations: %w", err)
	}
	return rotations, nil
}

// GetAbsences retrieves absences overlapping the [startDate, endDate]
// window.
func (d *DB) GetAbsences(ctx context.Context, orgID, startDate, endDate string) ([]db.Absence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, person_id, start_date::text, end_date::text,
		       start_time, end_time, reason, state
		FROM absences
		WHERE organization_id = $1 AND start_date <= $3::date AND end_date >= $2::date
	`, orgID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []db.Absence
	for rows.Next() {
		var a db.Absence
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.PersonID, &a.StartDate, &a.EndDate,
			&a.StartTime, &a.EndTime, &a.Reason, &a.State); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}
	return absences, nil
}

// GetHourlyBlockages retrieves all hourly blockages for an organization.
func (d *DB) GetHourlyBlockages(ctx context.Context, orgID string) ([]db.HourlyBlockage, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, COALESCE(person_id, ''), COALESCE(team_id, ''),
		       COALESCE(date::text, ''), rrule, start_time, end_time, reason
		FROM hourly_blockages
		WHERE organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly blockages: %w", err)
	}
	defer rows.Close()

	var blockages []db.HourlyBlockage
	for rows.Next() {
		var b db.HourlyBlockage
		if err := rows.Scan(&b.ID, &b.OrganizationID, &b.PersonID, &b.TeamID,
			&b.Date, &b.RRule, &b.StartTime, &b.EndTime, &b.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan hourly blockage: %w", err)
		}
		blockages = append(blockages, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hourly blockages: %w", err)
	}
	return blockages, nil
}

// GetTaskTemplates retrieves all task templates with their staffed
// segments.
func (d *DB) GetTaskTemplates(ctx context.Context, orgID string) ([]db.TaskTemplate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, name
		FROM task_templates
		WHERE organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task templates: %w", err)
	}

	templates := make(map[string]*db.TaskTemplate)
	var order []string
	for rows.Next() {
		var t db.TaskTemplate
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan task template: %w", err)
		}
		templates[t.ID] = &t
		order = append(order, t.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task templates: %w", err)
	}

	segRows, err := d.pool.Query(ctx, `
		SELECT s.id, s.task_id, s.recurrence, s.weekday, COALESCE(s.date::text, ''),
		       s.rrule, s.start_time, s.end_time, s.required_people, s.required_roles
		FROM task_segments s
		JOIN task_templates t ON t.id = s.task_id
		WHERE t.organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task segments: %w", err)
	}
	defer segRows.Close()

	for segRows.Next() {
		var s db.TaskSegment
		if err := segRows.Scan(&s.ID, &s.TaskID, &s.Recurrence, &s.Weekday, &s.Date,
			&s.RRule, &s.StartTime, &s.EndTime, &s.RequiredPeople, &s.RequiredRoles); err != nil {
			return nil, fmt.Errorf("failed to scan task segment: %w", err)
		}
		if t, ok := templates[s.TaskID]; ok {
			t.Segments = append(t.Segments, s)
		}
	}
	if err := segRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task segments: %w", err)
	}

	result := make([]db.TaskTemplate, 0, len(order))
	for _, id := range order {
		result = append(result, *templates[id])
	}
	return result, nil
}

// GetInterPersonConstraints retrieves all inter-person constraints for an
// organization.
func (d *DB) GetInterPersonConstraints(ctx context.Context, orgID string) ([]db.InterPersonConstraint, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, kind, field_a, value_a, field_b, value_b
		FROM inter_person_constraints
		WHERE organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inter-person constraints: %w", err)
	}
	defer rows.Close()

	var constraints []db.InterPersonConstraint
	for rows.Next() {
		var c db.InterPersonConstraint
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Kind, &c.FieldA, &c.ValueA, &c.FieldB, &c.ValueB); err != nil {
			return nil, fmt.Errorf("failed to scan inter-person constraint: %w", err)
		}
		constraints = append(constraints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inter-person constraints: %w", err)
	}
	return constraints, nil
}

// GetSchedulingConstraints retrieves all scheduling rules for an
// organization.
func (d *DB) GetSchedulingConstraints(ctx context.Context, orgID string) ([]db.SchedulingConstraint, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, kind, min_rest_hours
		FROM scheduling_constraints
		WHERE organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduling constraints: %w", err)
	}
	defer rows.Close()

	var constraints []db.SchedulingConstraint
	for rows.Next() {
		var c db.SchedulingConstraint
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Kind, &c.MinRestHours); err != nil {
			return nil, fmt.Errorf("failed to scan scheduling constraint: %w", err)
		}
		constraints = append(constraints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scheduling constraints: %w", err)
	}
	return constraints, nil
}

// GetShifts retrieves all shifts for an organization.
func (d *DB) GetShifts(ctx context.Context, orgID string) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, COALESCE(task_id, ''), start_at, end_at,
		       assigned_person_ids, cancelled, min_rest_hours
		FROM shifts
		WHERE organization_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.TaskID, &s.StartAt, &s.EndAt,
			&s.AssignedPersonIDs, &s.Cancelled, &s.MinRestHours); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return shifts, nil
}

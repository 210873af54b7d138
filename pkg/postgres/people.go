package postgres

import (
	"context"
	"fmt"

	"github.com/rotaplan/rotaplan/pkg/db"
)

// GetPeople retrieves all people for an organization, including the
// sparse per-date availability map.
func (d *DB) GetPeople(ctx context.Context, orgID string) ([]db.Person, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, first_name, last_name, COALESCE(team_id, ''),
		       roles, active, custom_fields, availability
		FROM people
		WHERE organization_id = $1
		ORDER BY last_name, first_name
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.FirstName, &p.LastName, &p.TeamID,
			&p.Roles, &p.Active, &p.CustomFields, &p.Availability); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}
	return people, nil
}

// GetTeams retrieves all teams for an organization.
func (d *DB) GetTeams(ctx context.Context, orgID string) ([]db.Team, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, name
		FROM teams
		WHERE organization_id = $1
		ORDER BY name
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []db.Team
	for rows.Next() {
		var t db.Team
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}
	return teams, nil
}

// GetOrganizationSettings retrieves the settings record for an
// organization. A missing record is an error: generation refuses to run
// without settings.
func (d *DB) GetOrganizationSettings(ctx context.Context, orgID string) (*db.OrganizationSettings, error) {
	var s db.OrganizationSettings
	err := d.pool.QueryRow(ctx, `
		SELECT organization_id, optimization_mode, default_days_base, default_days_home,
		       arrival_hour, departure_hour, min_staff, engine_version
		FROM organization_settings
		WHERE organization_id = $1
	`, orgID).Scan(&s.OrganizationID, &s.OptimizationMode, &s.DefaultDaysBase, &s.DefaultDaysHome,
		&s.ArrivalHour, &s.DepartureHour, &s.MinStaff, &s.EngineVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for organization %s: %w", orgID, err)
	}
	return &s, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/rotaplan/rotaplan/pkg/db"
)

// GetPresenceRange retrieves daily presence records within [startDate,
// endDate], ordered by person and date.
func (d *DB) GetPresenceRange(ctx context.Context, orgID, startDate, endDate string) ([]db.DailyPresence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, person_id, date::text, status, is_available,
		       start_hour, end_hour, source, home_status_type
		FROM daily_presence
		WHERE organization_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY person_id, date
	`, orgID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily presence: %w", err)
	}
	defer rows.Close()

	var records []db.DailyPresence
	for rows.Next() {
		var r db.DailyPresence
		if err := rows.Scan(&r.ID, &r.OrganizationID, &r.PersonID, &r.Date, &r.Status, &r.IsAvailable,
			&r.StartHour, &r.EndHour, &r.Source, &r.HomeStatusType); err != nil {
			return nil, fmt.Errorf("failed to scan daily presence record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily presence: %w", err)
	}
	return records, nil
}

// UpsertDailyPresence bulk-upserts presence records on the
// (organization, person, date) conflict key in a single transaction.
func (d *DB) UpsertDailyPresence(ctx context.Context, records []db.DailyPresence) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin presence upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO daily_presence
				(id, organization_id, person_id, date, status, is_available,
				 start_hour, end_hour, source, home_status_type)
			VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (organization_id, person_id, date) DO UPDATE SET
				status = EXCLUDED.status,
				is_available = EXCLUDED.is_available,
				start_hour = EXCLUDED.start_hour,
				end_hour = EXCLUDED.end_hour,
				source = EXCLUDED.source,
				home_status_type = EXCLUDED.home_status_type
		`, r.ID, r.OrganizationID, r.PersonID, r.Date, r.Status, r.IsAvailable,
			r.StartHour, r.EndHour, r.Source, r.HomeStatusType)
		if err != nil {
			return fmt.Errorf("failed to upsert presence for %s on %s: %w", r.PersonID, r.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit presence upsert: %w", err)
	}
	return nil
}

// UpdatePersonAvailability merges entries into the person's sparse
// availability map.
func (d *DB) UpdatePersonAvailability(ctx context.Context, orgID, personID string, entries map[string]db.AvailabilityEntry) error {
	if len(entries) == 0 {
		return nil
	}

	_, err := d.pool.Exec(ctx, `
		UPDATE people
		SET availability = availability || $3::jsonb
		WHERE organization_id = $1 AND id = $2
	`, orgID, personID, entries)
	if err != nil {
		return fmt.Errorf("failed to update availability for person %s: %w", personID, err)
	}
	return nil
}

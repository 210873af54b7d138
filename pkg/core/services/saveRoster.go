package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// saveBatchSize caps how many per-person updates run concurrently.
// Batches run concurrently within a batch, sequentially across batches,
// to avoid overwhelming the backend.
const saveBatchSize = 10

// SaveRosterStore defines the database operations needed to persist a
// generated roster.
type SaveRosterStore interface {
	db.PresenceStore
}

// SaveRosterResult reports what was persisted.
type SaveRosterResult struct {
	RecordsUpserted int
	PeopleUpdated   int
}

// SaveRoster persists a plan: manual overrides are merged over the
// generated entries, the realized records are bulk-upserted on the
// (organization, person, date) key, and each person's sparse availability
// map is updated in concurrent batches. This is the only step with side
// effects; generation itself can be re-run freely.
func SaveRoster(
	ctx context.Context,
	store SaveRosterStore,
	logger *zap.Logger,
	orgID string,
	plan *RosterPlan,
) (*SaveRosterResult, error) {
	merged := roster.ApplyOverrides(plan.Result.Roster, plan.Config.Overrides)
	logger.Debug("Saving roster", zap.Int("entries", len(merged)))

	records := make([]db.DailyPresence, len(merged))
	perPerson := make(map[string]map[string]db.AvailabilityEntry)

	for i, entry := range merged {
		day := entry.Status.DayStatus()
		record := db.DailyPresence{
			ID:             uuid.New().String(),
			OrganizationID: orgID,
			PersonID:       entry.PersonID,
			Date:           entry.Date,
			Status:         string(day),
			IsAvailable:    day.IsAvailableDefault(),
			StartHour:      entry.StartTime,
			EndHour:        entry.EndTime,
			Source:         string(entry.Source),
		}
		records[i] = record

		entries, ok := perPerson[entry.PersonID]
		if !ok {
			entries = make(map[string]db.AvailabilityEntry)
			perPerson[entry.PersonID] = entries
		}
		entries[entry.Date] = db.AvailabilityEntry{
			Status:      record.Status,
			IsAvailable: record.IsAvailable,
			StartHour:   record.StartHour,
			EndHour:     record.EndHour,
			Source:      record.Source,
		}
	}

	if err := store.UpsertDailyPresence(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to upsert daily presence: %w", err)
	}
	logger.Debug("Bulk upsert complete", zap.Int("records", len(records)))

	personIDs := make([]string, 0, len(perPerson))
	for id := range perPerson {
		personIDs = append(personIDs, id)
	}
	sort.Strings(personIDs)

	for offset := 0; offset < len(personIDs); offset += saveBatchSize {
		end := offset + saveBatchSize
		if end > len(personIDs) {
			end = len(personIDs)
		}
		batch := personIDs[offset:end]

		g, gctx := errgroup.WithContext(ctx)
		for _, personID := range batch {
			personID := personID
			g.Go(func() error {
				return store.UpdatePersonAvailability(gctx, orgID, personID, perPerson[personID])
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to update person availability: %w", err)
		}
		logger.Debug("Availability batch saved", zap.Int("people", len(batch)))
	}

	logger.Info("Roster saved",
		zap.Int("records", len(records)),
		zap.Int("people", len(personIDs)))

	return &SaveRosterResult{
		RecordsUpserted: len(records),
		PeopleUpdated:   len(personIDs),
	}, nil
}

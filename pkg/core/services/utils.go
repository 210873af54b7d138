package services

import (
	"context"
	"fmt"

	"github.com/rotaplan/rotaplan/pkg/core/model"
	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/db"
)

// fetchHistorySeeds runs the lookback query and derives per-person streak
// seeds: the most recent record within the lookback window plus the
// length of the consecutive same-type run ending at it. The 3-day gap
// rule is applied by the generator, not here.
func fetchHistorySeeds(ctx context.Context, store db.PresenceStore, orgID, startDate string) (map[string]roster.HistorySeed, error) {
	start, err := model.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	lookbackStart := model.FormatDate(start.AddDate(0, 0, -roster.HistoryLookbackDays))
	lookbackEnd := model.FormatDate(start.AddDate(0, 0, -1))

	records, err := store.GetPresenceRange(ctx, orgID, lookbackStart, lookbackEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch presence history: %w", err)
	}

	return historySeeds(records), nil
}

// historySeeds derives seeds from lookback records, which are ordered by
// person and date.
func historySeeds(records []db.DailyPresence) map[string]roster.HistorySeed {
	byPerson := make(map[string][]db.DailyPresence)
	for _, r := range records {
		byPerson[r.PersonID] = append(byPerson[r.PersonID], r)
	}

	seeds := make(map[string]roster.HistorySeed, len(byPerson))
	for personID, personRecords := range byPerson {
		latest := personRecords[len(personRecords)-1]
		status := model.NormalizeStatus(latest.Status)

		// Walk backwards while dates stay consecutive and the streak type
		// (base vs away) is unchanged.
		streak := 1
		for i := len(personRecords) - 2; i >= 0; i-- {
			current := personRecords[i+1]
			prior := personRecords[i]
			if !consecutiveDates(prior.Date, current.Date) {
				break
			}
			if sameStreakType(model.NormalizeStatus(prior.Status), status) {
				streak++
			} else {
				break
			}
		}

		seeds[personID] = roster.HistorySeed{
			Date:   latest.Date,
			Status: status,
			Streak: streak,
		}
	}
	return seeds
}

func consecutiveDates(earlier, later string) bool {
	e, err := model.ParseDate(earlier)
	if err != nil {
		return false
	}
	l, err := model.ParseDate(later)
	if err != nil {
		return false
	}
	return model.DaysBetween(e, l) == 1
}

func sameStreakType(a, b model.Status) bool {
	return (a == model.StatusBase) == (b == model.StatusBase)
}

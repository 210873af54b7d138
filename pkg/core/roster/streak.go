package roster

import (
	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// streakMachine is the per-person rolling state for ratio-mode generation:
// the current streak type and its length. Each person's machine is
// independent, so fairness is per-person temporal fairness rather than
// daily headcount balancing.
type streakMachine struct {
	statusType model.Status
	length     int
	daysBase   int
	daysHome   int
}

// newStreakMachine builds a machine for the cadence, optionally seeded
// from history. The seed applies only when the gap between its date and
// the window start is at most MaxHistoryGapDays; otherwise the person
// starts fresh with a base streak.
func newStreakMachine(daysBase, daysHome int, seed *HistorySeed, startDate string) *streakMachine {
	m := &streakMachine{
		statusType: model.StatusBase,
		length:     0,
		daysBase:   daysBase,
		daysHome:   daysHome,
	}
	if seed == nil {
		return m
	}
	seedDate, err := model.ParseDate(seed.Date)
	if err != nil {
		return m
	}
	start, err := model.ParseDate(startDate)
	if err != nil {
		return m
	}
	gap := model.DaysBetween(seedDate, start)
	if gap < 0 || gap > MaxHistoryGapDays {
		return m
	}
	m.statusType = collapseToStreakType(seed.Status)
	m.length = seed.Streak
	if m.length < 0 {
		m.length = 0
	}
	return m
}

// peek returns the day's cadence status without advancing the machine:
// the current streak type, or the opposite one once the streak has
// reached its cadence length. The day-major loop peeks every person,
// adjusts for coverage, then commits the final statuses with force.
func (m *streakMachine) peek() model.Status {
	if m.length >= m.capacity() {
		if m.statusType == model.StatusBase {
			return model.StatusHome
		}
		return model.StatusBase
	}
	return m.statusType
}

// force pins the day to a locked status (absence, manual lock, override)
// and updates the streak state so subsequent days continue naturally.
func (m *streakMachine) force(status model.Status) model.Status {
	t := collapseToStreakType(status)
	if t == m.statusType {
		m.length++
	} else {
		m.statusType = t
		m.length = 1
	}
	return status
}

func (m *streakMachine) capacity() int {
	if m.statusType == model.StatusHome {
		return m.daysHome
	}
	return m.daysBase
}

// collapseToStreakType maps any day status onto the binary streak types
// the machine tracks. Leave and unavailable days behave like home days
// for streak continuity.
func collapseToStreakType(s model.Status) model.Status {
	switch s {
	case model.StatusBase:
		return model.StatusBase
	default:
		return model.StatusHome
	}
}

package availability

import (
	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// manualEntryStrategy resolves from a stored per-date entry written by a
// user. Manual entries outrank every other layer.
type manualEntryStrategy struct{}

func (manualEntryStrategy) Name() string { return "manual" }

func (manualEntryStrategy) Resolve(q Query) (*Effective, bool) {
	entry, ok := storedEntry(q)
	if !ok || !entry.Source.IsManual() {
		return nil, false
	}
	return effectiveFromEntry(entry), true
}

// persistedEntryStrategy resolves from any other stored per-date entry
// (generator output, absence consolidation). Stored records are the
// authoritative history for their date and rank above live absence and
// rotation records.
type persistedEntryStrategy struct{}

func (persistedEntryStrategy) Name() string { return "persisted" }

func (persistedEntryStrategy) Resolve(q Query) (*Effective, bool) {
	entry, ok := storedEntry(q)
	if !ok {
		return nil, false
	}
	return effectiveFromEntry(entry), true
}

// absenceStrategy resolves from an approved absence covering the date.
type absenceStrategy struct {
	engine EngineVersion
}

func (absenceStrategy) Name() string { return "absence" }

func (s absenceStrategy) Resolve(q Query) (*Effective, bool) {
	for _, a := range q.Absences {
		if a.PersonID != q.Person.ID || !a.IsApproved() || !a.Covers(q.Date) {
			continue
		}

		eff := &Effective{
			Status:         model.StatusHome,
			IsAvailable:    false,
			StartHour:      model.DayStart,
			EndHour:        model.DayEnd,
			Source:         model.SourceAbsence,
			HomeStatusType: absenceHomeType(a),
		}

		// The legacy engine flattened every absence to a full day.
		if s.engine != EngineLegacy && !a.IsFullDay() {
			eff.StartHour = a.StartTime
			eff.EndHour = a.EndTime
		}
		return eff, true
	}
	return nil, false
}

func absenceHomeType(a model.Absence) string {
	if a.Reason != "" {
		return a.Reason
	}
	return string(model.StatusLeave)
}

// personalRotationStrategy resolves from a rotation scoped to the person.
type personalRotationStrategy struct{}

func (personalRotationStrategy) Name() string { return "personal_rotation" }

func (personalRotationStrategy) Resolve(q Query) (*Effective, bool) {
	for _, r := range q.Rotations {
		if !r.IsPersonal() || r.PersonID != q.Person.ID {
			continue
		}
		if eff, ok := projectRotation(r, q.Date, model.SourcePersonalRotation); ok {
			return eff, true
		}
	}
	return nil, false
}

// teamRotationStrategy resolves from the rotation of the person's team.
type teamRotationStrategy struct{}

func (teamRotationStrategy) Name() string { return "rotation" }

func (teamRotationStrategy) Resolve(q Query) (*Effective, bool) {
	if q.Person.TeamID == "" {
		return nil, false
	}
	for _, r := range q.Rotations {
		if r.IsPersonal() || r.TeamID != q.Person.TeamID {
			continue
		}
		if eff, ok := projectRotation(r, q.Date, model.SourceRotation); ok {
			return eff, true
		}
	}
	return nil, false
}

// defaultStrategy terminates the chain: present on base, all day.
type defaultStrategy struct{}

func (defaultStrategy) Name() string { return "default" }

func (defaultStrategy) Resolve(q Query) (*Effective, bool) {
	return defaultEffective(), true
}

// storedEntry fetches the person's persisted entry for the queried date.
func storedEntry(q Query) (model.AvailabilityEntry, bool) {
	if q.Person == nil || q.Person.Availability == nil {
		return model.AvailabilityEntry{}, false
	}
	entry, ok := q.Person.Availability[q.Date]
	return entry, ok
}

// effectiveFromEntry converts a persisted entry, normalizing legacy status
// strings and filling missing bounds with full-day defaults.
func effectiveFromEntry(entry model.AvailabilityEntry) *Effective {
	status := model.NormalizeStatus(string(entry.Status))
	eff := &Effective{
		Status:            status,
		IsAvailable:       entry.IsAvailable,
		StartHour:         entry.StartHour,
		EndHour:           entry.EndHour,
		Source:            entry.Source,
		HomeStatusType:    entry.HomeStatusType,
		UnavailableBlocks: append([]model.Block(nil), entry.UnavailableBlocks...),
	}
	if eff.StartHour == "" {
		eff.StartHour = model.DayStart
	}
	if eff.EndHour == "" {
		eff.EndHour = model.DayEnd
	}
	return eff
}

// projectRotation projects a cadence from its start date onto the target
// date. The first DaysOnBase days of every cycle are on-base, the rest at
// home. Unusable cadences or malformed dates fall through to lower layers.
func projectRotation(r model.TeamRotation, date string, source model.Source) (*Effective, bool) {
	cycle := r.CycleLength()
	if cycle == 0 {
		return nil, false
	}
	start, err := model.ParseDate(r.StartDate)
	if err != nil {
		return nil, false
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, false
	}

	// Floored modulo keeps the projection periodic for dates before the
	// rotation start as well.
	offset := ((model.DaysBetween(start, day) % cycle) + cycle) % cycle
	if offset < r.DaysOnBase {
		return &Effective{
			Status:      model.StatusBase,
			IsAvailable: true,
			StartHour:   model.DayStart,
			EndHour:     model.DayEnd,
			Source:      source,
		}, true
	}
	return &Effective{
		Status:         model.StatusHome,
		IsAvailable:    false,
		StartHour:      model.DayStart,
		EndHour:        model.DayEnd,
		Source:         source,
		HomeStatusType: "rotation",
	}, true
}

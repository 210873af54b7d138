package availability

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/rotaplan/rotaplan/pkg/core/model"
)

const minutesPerDay = 24 * 60

// OverlapsWindow reports whether a blockage interval overlaps a query
// window. Both intervals are half-open [start, end) in minutes since
// midnight; a blockage whose end precedes its start wraps past midnight.
func OverlapsWindow(blockStart, blockEnd, winStart, winEnd string) bool {
	bs := model.MinuteOfDay(blockStart)
	be := model.MinuteOfDay(blockEnd)
	if be < bs {
		be += minutesPerDay
	}
	ws := model.MinuteOfDay(winStart)
	we := model.MinuteOfDay(winEnd)
	if we < ws {
		we += minutesPerDay
	}
	return bs < we && be > ws
}

// BlockageAppliesOn reports whether a blockage is active on the given
// date: dated blockages match exactly, recurring ones are expanded from
// their RRULE.
func BlockageAppliesOn(b model.HourlyBlockage, date string) bool {
	if b.Date != "" {
		return b.Date == date
	}
	return RecursOn(b.RRule, date)
}

// RecursOn reports whether a recurrence rule produces an occurrence on the
// given date. Malformed rules never match.
func RecursOn(rruleStr, date string) bool {
	if rruleStr == "" {
		return false
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return false
	}
	opt, err := rrule.StrToROption(rruleStr)
	if err != nil {
		return false
	}
	// Anchor the rule a week back so weekday-pinned rules cover the
	// queried date regardless of when the rule was written.
	opt.Dtstart = day.AddDate(0, 0, -7)
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return false
	}
	return len(rule.Between(day, day.Add(24*time.Hour-time.Second), true)) > 0
}

// layerBlockages appends every blockage overlapping the person's working
// window for the day, regardless of which source resolved the day.
func layerBlockages(eff *Effective, q Query) {
	if q.Person == nil {
		return
	}
	for _, b := range q.Blockages {
		if !b.AppliesTo(q.Person) || !BlockageAppliesOn(b, q.Date) {
			continue
		}
		if !OverlapsWindow(b.StartTime, b.EndTime, eff.StartHour, eff.EndHour) {
			continue
		}
		eff.UnavailableBlocks = append(eff.UnavailableBlocks, model.Block{
			StartHour: b.StartTime,
			EndHour:   b.EndTime,
			Reason:    b.Reason,
		})
	}
}

// ForWindow checks whether the resolved day makes the person assignable
// over a specific time window. When not, it returns a human-readable
// reason suitable for an override confirmation prompt.
func (e *Effective) ForWindow(winStart, winEnd string) (bool, string) {
	if e.Status == model.StatusHome || e.Status == model.StatusLeave {
		reason := "at home"
		if e.HomeStatusType != "" {
			reason = fmt.Sprintf("at home (%s)", e.HomeStatusType)
		}
		return false, reason
	}
	if e.Status == model.StatusUnavailable {
		return false, "unavailable"
	}
	if e.StartHour != "" && model.MinuteOfDay(e.StartHour) > model.MinuteOfDay(winStart) {
		return false, fmt.Sprintf("arrives at %s", e.StartHour)
	}
	if e.EndHour != "" && e.EndHour != model.DayEnd && model.MinuteOfDay(e.EndHour) < model.MinuteOfDay(winEnd) {
		return false, fmt.Sprintf("leaves at %s", e.EndHour)
	}
	for _, b := range e.UnavailableBlocks {
		if OverlapsWindow(b.StartHour, b.EndHour, winStart, winEnd) {
			reason := "hourly blockage"
			if b.Reason != "" {
				reason = fmt.Sprintf("hourly blockage: %s", b.Reason)
			}
			return false, reason
		}
	}
	return true, ""
}

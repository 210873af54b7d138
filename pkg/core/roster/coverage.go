package roster

import (
	"time"

	"github.com/rotaplan/rotaplan/pkg/core/availability"
	"github.com/rotaplan/rotaplan/pkg/core/model"
)

// TaskDemand computes the personnel demand implied by all task segments
// active on the given date: daily segments always count, weekly segments
// count on their configured weekday (or recurrence rule), specific-date
// segments only on their date. Demand is the sum of required people
// across active segments, not deduplicated by role.
func TaskDemand(tasks []model.TaskTemplate, date string) int {
	day, err := model.ParseDate(date)
	if err != nil {
		return 0
	}

	demand := 0
	for _, task := range tasks {
		for _, seg := range task.Segments {
			if segmentActiveOn(seg, date, day) {
				demand += seg.RequiredPeople
			}
		}
	}
	return demand
}

func segmentActiveOn(seg model.TaskSegment, date string, day time.Time) bool {
	switch seg.Recurrence {
	case model.SegmentDaily:
		return true
	case model.SegmentWeekly:
		if seg.RRule != "" {
			return availability.RecursOn(seg.RRule, date)
		}
		return day.Weekday() == seg.Weekday
	case model.SegmentSpecific:
		return seg.Date == date
	}
	return false
}

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotaplan/rotaplan/pkg/core/model"
)

func TestTaskDemand_DailySegments(t *testing.T) {
	tasks := []model.TaskTemplate{
		{ID: "t1", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentDaily, RequiredPeople: 2},
		}},
	}
	assert.Equal(t, 2, TaskDemand(tasks, "2025-03-03"))
	assert.Equal(t, 2, TaskDemand(tasks, "2025-03-09"))
}

func TestTaskDemand_WeeklyByWeekday(t *testing.T) {
	tasks := []model.TaskTemplate{
		{ID: "t1", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentWeekly, Weekday: 1, RequiredPeople: 3}, // Monday
		}},
	}
	// 2025-03-03 is a Monday.
	assert.Equal(t, 3, TaskDemand(tasks, "2025-03-03"))
	assert.Equal(t, 0, TaskDemand(tasks, "2025-03-04"))
	assert.Equal(t, 3, TaskDemand(tasks, "2025-03-10"))
}

func TestTaskDemand_WeeklyByRRule(t *testing.T) {
	tasks := []model.TaskTemplate{
		{ID: "t1", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentWeekly, RRule: "FREQ=WEEKLY;BYDAY=TU,TH", RequiredPeople: 2},
		}},
	}
	assert.Equal(t, 2, TaskDemand(tasks, "2025-03-04")) // Tuesday
	assert.Equal(t, 2, TaskDemand(tasks, "2025-03-06")) // Thursday
	assert.Equal(t, 0, TaskDemand(tasks, "2025-03-05")) // Wednesday
}

func TestTaskDemand_SpecificDate(t *testing.T) {
	tasks := []model.TaskTemplate{
		{ID: "t1", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentSpecific, Date: "2025-03-07", RequiredPeople: 4},
		}},
	}
	assert.Equal(t, 4, TaskDemand(tasks, "2025-03-07"))
	assert.Equal(t, 0, TaskDemand(tasks, "2025-03-08"))
}

func TestTaskDemand_SumsActiveSegmentsAcrossTasks(t *testing.T) {
	tasks := []model.TaskTemplate{
		{ID: "t1", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentDaily, RequiredPeople: 2},
			{Recurrence: model.SegmentWeekly, Weekday: 1, RequiredPeople: 1},
		}},
		{ID: "t2", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentSpecific, Date: "2025-03-03", RequiredPeople: 1},
		}},
	}
	// Monday 2025-03-03: 2 (daily) + 1 (weekly) + 1 (specific) = 4.
	assert.Equal(t, 4, TaskDemand(tasks, "2025-03-03"))
	// Tuesday: just the daily segment.
	assert.Equal(t, 2, TaskDemand(tasks, "2025-03-04"))
}

func TestTaskDemand_MalformedDate(t *testing.T) {
	tasks := []model.TaskTemplate{
		{ID: "t1", Segments: []model.TaskSegment{
			{Recurrence: model.SegmentDaily, RequiredPeople: 2},
		}},
	}
	assert.Equal(t, 0, TaskDemand(tasks, "03/07/2025"))
}

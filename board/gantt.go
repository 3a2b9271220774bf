package board

import (
	"fmt"
	"time"
)

const (
	// defaultSpan is assumed for issues without a due date.
	defaultSpan = 14 * 24 * time.Hour

	summaryLimit = 50
)

// GanttInterval is one synthesized timeline bar. Issues without explicit
// scheduling dates get an inferred start/finish pair.
type GanttInterval struct {
	Task     string    `json:"task"`
	Start    time.Time `json:"start"`
	Finish   time.Time `json:"finish"`
	Resource string    `json:"resource"`
	Status   string    `json:"status"`
	Priority string    `json:"priority"`
	Assignee string    `json:"assignee"`
	Summary  string    `json:"summary"`
	Key      string    `json:"key"`
}

// GanttIntervals derives timeline intervals from a table, optionally
// filtered to the selected areas first. An issue matches the selection
// when its area set intersects it; an issue without areas matches only
// when "No Area" is itself selected. A nil or empty selection keeps
// everything.
func GanttIntervals(table *Table, selectedAreas []string) []GanttInterval {
	intervals := make([]GanttInterval, 0, len(table.Issues))

	for _, issue := range table.Issues {
		if len(selectedAreas) > 0 && !matchesAreas(issue, selectedAreas) {
			continue
		}

		start := issue.Created
		if issue.StartDate != nil {
			start = *issue.StartDate
		}

		finish := start.Add(defaultSpan)
		if issue.DueDate != nil {
			finish = *issue.DueDate
		}

		resource := issue.AreaLabel()
		if resource == NoArea {
			resource = "General"
		}

		intervals = append(intervals, GanttInterval{
			Task:     fmt.Sprintf("%s - %s", issue.Key, truncate(issue.Summary, summaryLimit)),
			Start:    start,
			Finish:   finish,
			Resource: resource,
			Status:   issue.Status,
			Priority: issue.Priority,
			Assignee: issue.Assignee,
			Summary:  issue.Summary,
			Key:      issue.Key,
		})
	}

	return intervals
}

func matchesAreas(issue Issue, selected []string) bool {
	if len(issue.Areas) == 0 {
		for _, s := range selected {
			if s == NoArea {
				return true
			}
		}
		return false
	}
	for _, s := range selected {
		for _, area := range issue.Areas {
			if s == area {
				return true
			}
		}
	}
	return false
}

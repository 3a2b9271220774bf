package board

import "sort"

// Stats holds the headline metrics for one table snapshot.
type Stats struct {
	TotalIssues  int            `json:"total_issues"`
	BugCount     int            `json:"bugs_count"`
	OpenIssues   int            `json:"open_issues"`
	ClosedIssues int            `json:"closed_issues"`
	ByPriority   map[string]int `json:"by_priority"`
	ByStatus     map[string]int `json:"by_status"`
	ByAssignee   map[string]int `json:"by_assignee"`
	ByArea       map[string]int `json:"by_area"`
	ByQuarter    map[string]int `json:"by_quarter"`
}

// Summarize computes grouped counts over a table. Everything is a plain
// tally, recomputed fully each call; the assignee breakdown keeps only
// the ten busiest assignees.
func Summarize(table *Table) Stats {
	stats := Stats{
		ByPriority: make(map[string]int),
		ByStatus:   make(map[string]int),
		ByAssignee: make(map[string]int),
		ByArea:     make(map[string]int),
		ByQuarter:  make(map[string]int),
	}

	byAssignee := make(map[string]int)
	for _, issue := range table.Issues {
		stats.TotalIssues++
		if issue.IsBug {
			stats.BugCount++
		}
		if issue.Status == "Done" {
			stats.ClosedIssues++
		} else {
			stats.OpenIssues++
		}
		stats.ByPriority[issue.Priority]++
		stats.ByStatus[issue.Status]++
		stats.ByArea[issue.AreaLabel()]++
		stats.ByQuarter[issue.Quarter]++
		byAssignee[issue.Assignee]++
	}

	for _, assignee := range TopKeys(byAssignee, 10) {
		stats.ByAssignee[assignee] = byAssignee[assignee]
	}

	return stats
}

// TopKeys returns up to n keys of a frequency table, ordered by
// descending count with ties broken alphabetically.
func TopKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

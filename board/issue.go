package board

import (
	"strings"
	"time"
)

// NoArea is the area label shown for issues matching none of the
// configured areas. Such issues are dropped from the board table but kept
// on the incident and bug paths.
const NoArea = "No Area"

// Issue is the canonical row for one tracked work item. Rows are never
// mutated after construction; every rebuild produces a fresh table.
type Issue struct {
	Key         string     `json:"key"`
	Summary     string     `json:"summary"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Assignee    string     `json:"assignee"`
	Reporter    string     `json:"reporter"`
	IssueType   string     `json:"issue_type"`
	Areas       []string   `json:"areas"`
	Created     time.Time  `json:"created"`
	Updated     time.Time  `json:"updated"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Quarter     string     `json:"quarter"`
	IsBug       bool       `json:"is_bug"`
	StoryPoints *float64   `json:"story_points,omitempty"`
	Description string     `json:"description,omitempty"`
}

// AreaLabel renders the area set for display, "No Area" when empty.
func (i Issue) AreaLabel() string {
	if len(i.Areas) == 0 {
		return NoArea
	}
	return strings.Join(i.Areas, ", ")
}

// Table is an immutable snapshot of normalized issues plus any soft
// warnings collected while building it.
type Table struct {
	Issues    []Issue   `json:"issues"`
	Warnings  []string  `json:"warnings,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Issues) == 0
}

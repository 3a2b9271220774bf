package board

import (
	"fmt"
	"log"
	"time"

	"aicockpit-dashboard/config"
	"aicockpit-dashboard/jira"
)

// Searcher is the issue fetcher collaborator. A failed query contributes
// zero rows; the builder treats the error as a soft warning.
type Searcher interface {
	Search(jql string, maxResults int) ([]jira.RawIssue, error)
}

// Builder assembles normalized issue tables from the tracker.
type Builder struct {
	searcher Searcher
	config   *config.Config
}

// NewBuilder creates a table builder on top of a search collaborator.
func NewBuilder(searcher Searcher, cfg *config.Config) *Builder {
	return &Builder{searcher: searcher, config: cfg}
}

// BuildBoard fetches the board dataset for a project: one query per
// configured area label, then one project-wide query, merged and
// deduplicated by issue key with the first occurrence winning. Rows
// matching none of the configured areas are dropped. Query failures are
// collected as warnings; a total failure yields an empty table, never an
// error.
func (b *Builder) BuildBoard(projectKey string) *Table {
	table := &Table{FetchedAt: time.Now()}
	seen := make(map[string]bool)

	for _, area := range b.config.Areas {
		jql := fmt.Sprintf("project = %q AND labels = %q", projectKey, area)
		b.collect(table, seen, jql, b.config.Jira.LabelMaxResults, true)
	}

	jql := fmt.Sprintf("project = %q", projectKey)
	b.collect(table, seen, jql, b.config.Jira.ProjectMaxResults, true)

	return table
}

// BuildIncidents fetches the incident dataset for a project. Incidents
// skip the area filter: rows without a canonical area are kept and render
// as "No Area".
func (b *Builder) BuildIncidents(projectKey string) *Table {
	jql := fmt.Sprintf("project = %q AND issuetype in (Incident, Incidente)", projectKey)
	return b.buildUnfiltered(jql)
}

// BuildBugs fetches all issues of type Bug for a project, unfiltered.
func (b *Builder) BuildBugs(projectKey string) *Table {
	jql := fmt.Sprintf("project = %q AND issuetype = Bug", projectKey)
	return b.buildUnfiltered(jql)
}

func (b *Builder) buildUnfiltered(jql string) *Table {
	table := &Table{FetchedAt: time.Now()}
	seen := make(map[string]bool)
	b.collect(table, seen, jql, b.config.Jira.ProjectMaxResults, false)
	return table
}

// collect runs one source query and appends its new rows to the table.
func (b *Builder) collect(table *Table, seen map[string]bool, jql string, maxResults int, areaFilter bool) {
	raws, err := b.searcher.Search(jql, maxResults)
	if err != nil {
		log.Printf("Warning: query failed, continuing without it [%s]: %v", jql, err)
		table.Warnings = append(table.Warnings, fmt.Sprintf("query failed: %s", jql))
		return
	}

	for _, raw := range raws {
		if seen[raw.Key] {
			continue
		}
		seen[raw.Key] = true

		issue, err := b.normalize(raw)
		if err != nil {
			log.Printf("Error processing issue %s: %v", raw.Key, err)
			continue
		}
		if areaFilter && len(issue.Areas) == 0 {
			continue
		}
		table.Issues = append(table.Issues, issue)
	}
}

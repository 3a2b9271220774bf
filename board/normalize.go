package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"aicockpit-dashboard/jira"
)

const (
	timestampLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
	longDateLayout  = "Mon, 02 Jan 2006 15:04:05"

	descriptionLimit = 200
)

// areaRule maps trigger substrings to a canonical area. Check order is
// fixed: the first rule whose substring matches wins for that label.
type areaRule struct {
	area     string
	triggers []string
}

var areaRules = []areaRule{
	{"Desenvolvimento", []string{"desenvolvimento", "development"}},
	{"DevOps", []string{"devops"}},
	{"Qualidade", []string{"qualidade", "quality"}},
	{"Dados", []string{"dados", "data"}},
	{"Arquitetura", []string{"arquitetura", "architecture"}},
}

// NormalizeLabels maps free-text labels to the canonical area set.
// Matching is case-insensitive substring; a label matches at most one
// rule and unmatched labels are discarded. The result is deduplicated
// and keeps first-seen order.
func NormalizeLabels(labels []string) []string {
	var areas []string
	seen := make(map[string]bool)

	for _, label := range labels {
		lower := strings.ToLower(label)
		for _, rule := range areaRules {
			matched := false
			for _, trigger := range rule.triggers {
				if strings.Contains(lower, trigger) {
					matched = true
					break
				}
			}
			if matched {
				if !seen[rule.area] {
					seen[rule.area] = true
					areas = append(areas, rule.area)
				}
				break
			}
		}
	}

	return areas
}

// Quarter buckets a date into its calendar quarter label, "Qn YYYY".
func Quarter(date time.Time) string {
	q := (int(date.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %d", q, date.Year())
}

// parseTimestamp parses the created/updated format, truncated to the
// seconds precision Jira guarantees.
func parseTimestamp(value string) (time.Time, error) {
	if len(value) > len(timestampLayout) {
		value = value[:len(timestampLayout)]
	}
	return time.Parse(timestampLayout, value)
}

// parseFlexibleDate handles the two formats the due date and start date
// fields arrive in. Returns nil when the value is empty or unparsable;
// bad optional dates are not an error.
func parseFlexibleDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t
	}
	truncated := value
	if len(truncated) > len(longDateLayout) {
		truncated = truncated[:len(longDateLayout)]
	}
	if t, err := time.Parse(longDateLayout, truncated); err == nil {
		return &t
	}
	return nil
}

// normalize converts one raw issue into a canonical row. The returned
// row is pre-filter: callers decide whether rows without any canonical
// area are kept. Fails only when created/updated are unparsable, which
// drops that one record.
func (b *Builder) normalize(raw jira.RawIssue) (Issue, error) {
	created, err := parseTimestamp(raw.Created)
	if err != nil {
		return Issue{}, fmt.Errorf("issue %s: bad created date %q: %w", raw.Key, raw.Created, err)
	}
	updated, err := parseTimestamp(raw.Updated)
	if err != nil {
		return Issue{}, fmt.Errorf("issue %s: bad updated date %q: %w", raw.Key, raw.Updated, err)
	}

	issue := Issue{
		Key:       raw.Key,
		Summary:   raw.Summary,
		Status:    raw.Status,
		Priority:  raw.Priority,
		Assignee:  raw.Assignee,
		Reporter:  raw.Reporter,
		IssueType: raw.IssueType,
		Areas:     NormalizeLabels(raw.Labels),
		Created:   created,
		Updated:   updated,
		DueDate:   parseFlexibleDate(raw.DueDate),
		IsBug:     isBugType(raw.IssueType),
	}

	if issue.Priority == "" {
		issue.Priority = "Medium"
	}
	if issue.Assignee == "" {
		issue.Assignee = "Unassigned"
	}
	if issue.Reporter == "" {
		issue.Reporter = "Unknown"
	}

	// The start date lives in a site-specific custom field, so its JSON
	// key is only known at runtime.
	if v := gjson.GetBytes(raw.Fields, b.config.StartDateField); v.Exists() && v.Type == gjson.String {
		issue.StartDate = parseFlexibleDate(v.String())
	}
	if v := gjson.GetBytes(raw.Fields, b.config.StoryPointsField); v.Exists() && v.Type == gjson.Number {
		points := v.Float()
		issue.StoryPoints = &points
	}

	if issue.StartDate != nil {
		issue.Quarter = Quarter(*issue.StartDate)
	} else {
		issue.Quarter = Quarter(issue.Created)
	}

	if raw.Description != "" {
		issue.Description = truncate(raw.Description, descriptionLimit)
	}

	return issue, nil
}

func isBugType(issueType string) bool {
	switch strings.ToLower(issueType) {
	case "bug", "defect", "error":
		return true
	}
	return false
}

// truncate shortens s to limit runes, appending an ellipsis marker.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

package board

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"aicockpit-dashboard/config"
	"aicockpit-dashboard/jira"
)

func testBuilder() *Builder {
	return NewBuilder(nil, config.Default())
}

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{
			name:   "duplicate case variants collapse",
			labels: []string{"DevOps", "DEVOPS"},
			want:   []string{"DevOps"},
		},
		{
			name:   "bilingual synonyms",
			labels: []string{"development", "quality", "architecture"},
			want:   []string{"Desenvolvimento", "Qualidade", "Arquitetura"},
		},
		{
			name:   "substring match inside longer label",
			labels: []string{"time-desenvolvimento-2025"},
			want:   []string{"Desenvolvimento"},
		},
		{
			name:   "devops beats dados when both substrings present",
			labels: []string{"devops-dados"},
			want:   []string{"DevOps"},
		},
		{
			name:   "unmatched labels discarded",
			labels: []string{"urgent", "frontend", "Q3-push"},
			want:   nil,
		},
		{
			name:   "no labels",
			labels: nil,
			want:   nil,
		},
		{
			name:   "mixed matched and unmatched keeps first-seen order",
			labels: []string{"Dados", "urgent", "DevOps", "dados"},
			want:   []string{"Dados", "DevOps"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLabels(tt.labels)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLabels(%v) = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}
}

func TestQuarter(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Q1 2025"},
		{time.March, "Q1 2025"},
		{time.April, "Q2 2025"},
		{time.June, "Q2 2025"},
		{time.July, "Q3 2025"},
		{time.September, "Q3 2025"},
		{time.October, "Q4 2025"},
		{time.December, "Q4 2025"},
	}

	for _, tt := range tests {
		date := time.Date(2025, tt.month, 15, 0, 0, 0, 0, time.UTC)
		if got := Quarter(date); got != tt.want {
			t.Errorf("Quarter(%s) = %q, want %q", date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		value string
		want  string // "" means nil
	}{
		{"2025-12-31", "2025-12-31"},
		{"Wed, 31 Dec 2025 00:00:00 +0000", "2025-12-31"},
		{"Mon, 26 May 2025 00:00:00 +0000", "2025-05-26"},
		{"", ""},
		{"not a date", ""},
		{"31/12/2025", ""},
	}

	for _, tt := range tests {
		got := parseFlexibleDate(tt.value)
		if tt.want == "" {
			if got != nil {
				t.Errorf("parseFlexibleDate(%q) = %v, want nil", tt.value, got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("parseFlexibleDate(%q) = nil, want %s", tt.value, tt.want)
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("parseFlexibleDate(%q) = %s, want %s", tt.value, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestNormalizeScenario(t *testing.T) {
	b := testBuilder()

	raw := jira.RawIssue{
		Key:       "AICP-1",
		Summary:   "Build ingestion pipeline",
		Status:    "Done",
		IssueType: "Story",
		Labels:    []string{"Desenvolvimento"},
		Created:   "2025-02-10T10:00:00.000-0300",
		Updated:   "2025-02-11T09:30:00.000-0300",
	}

	issue, err := b.normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}

	if !reflect.DeepEqual(issue.Areas, []string{"Desenvolvimento"}) {
		t.Errorf("Areas = %v, want [Desenvolvimento]", issue.Areas)
	}
	if issue.Quarter != "Q1 2025" {
		t.Errorf("Quarter = %q, want %q", issue.Quarter, "Q1 2025")
	}
	if issue.Priority != "Medium" {
		t.Errorf("Priority = %q, want %q (default)", issue.Priority, "Medium")
	}
	if issue.Assignee != "Unassigned" {
		t.Errorf("Assignee = %q, want %q (default)", issue.Assignee, "Unassigned")
	}
	if issue.Reporter != "Unknown" {
		t.Errorf("Reporter = %q, want %q (default)", issue.Reporter, "Unknown")
	}
	if issue.IsBug {
		t.Error("IsBug = true for a Story")
	}
	if issue.DueDate != nil || issue.StartDate != nil {
		t.Error("expected nil due/start dates")
	}
}

func TestNormalizeBadCreatedDropsIssue(t *testing.T) {
	b := testBuilder()

	_, err := b.normalize(jira.RawIssue{
		Key:     "AICP-2",
		Created: "yesterday",
		Updated: "2025-02-11T09:30:00",
	})
	if err == nil {
		t.Fatal("normalize() with unparsable created should fail")
	}
}

func TestNormalizeCustomFields(t *testing.T) {
	b := testBuilder()

	raw := jira.RawIssue{
		Key:       "AICP-3",
		Status:    "In Progress",
		IssueType: "Task",
		Labels:    []string{"dados"},
		Created:   "2025-01-05T08:00:00",
		Updated:   "2025-01-06T08:00:00",
		DueDate:   "2025-07-01",
		Fields:    []byte(`{"customfield_11317":"2025-05-26","customfield_10016":8}`),
	}

	issue, err := b.normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}

	if issue.StartDate == nil || issue.StartDate.Format("2006-01-02") != "2025-05-26" {
		t.Errorf("StartDate = %v, want 2025-05-26", issue.StartDate)
	}
	// Quarter follows the start date when present, not the created date.
	if issue.Quarter != "Q2 2025" {
		t.Errorf("Quarter = %q, want %q", issue.Quarter, "Q2 2025")
	}
	if issue.DueDate == nil || issue.DueDate.Format("2006-01-02") != "2025-07-01" {
		t.Errorf("DueDate = %v, want 2025-07-01", issue.DueDate)
	}
	if issue.StoryPoints == nil || *issue.StoryPoints != 8 {
		t.Errorf("StoryPoints = %v, want 8", issue.StoryPoints)
	}
}

func TestNormalizeBugTypes(t *testing.T) {
	b := testBuilder()

	for _, issueType := range []string{"Bug", "bug", "Defect", "ERROR"} {
		issue, err := b.normalize(jira.RawIssue{
			Key:       "AICP-4",
			IssueType: issueType,
			Created:   "2025-01-05T08:00:00",
			Updated:   "2025-01-05T08:00:00",
		})
		if err != nil {
			t.Fatalf("normalize() error = %v", err)
		}
		if !issue.IsBug {
			t.Errorf("IsBug = false for issue type %q", issueType)
		}
	}

	issue, err := b.normalize(jira.RawIssue{
		Key:       "AICP-5",
		IssueType: "Story",
		Created:   "2025-01-05T08:00:00",
		Updated:   "2025-01-05T08:00:00",
	})
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if issue.IsBug {
		t.Error("IsBug = true for issue type Story")
	}
}

func TestNormalizeDescriptionTruncated(t *testing.T) {
	b := testBuilder()

	long := strings.Repeat("x", 450)
	issue, err := b.normalize(jira.RawIssue{
		Key:         "AICP-6",
		IssueType:   "Task",
		Created:     "2025-01-05T08:00:00",
		Updated:     "2025-01-05T08:00:00",
		Description: long,
	})
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if want := strings.Repeat("x", 200) + "..."; issue.Description != want {
		t.Errorf("Description length = %d, want 203 with ellipsis", len(issue.Description))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	b := testBuilder()

	raw := jira.RawIssue{
		Key:       "AICP-7",
		Summary:   "Same input, same row",
		Status:    "To Do",
		Priority:  "High",
		Assignee:  "Ana",
		Reporter:  "Rui",
		IssueType: "Task",
		Labels:    []string{"Qualidade", "DevOps"},
		Created:   "2025-03-01T12:00:00",
		Updated:   "2025-03-02T12:00:00",
		DueDate:   "2025-04-01",
		Fields:    []byte(`{"customfield_11317":"2025-03-15"}`),
	}

	first, err := b.normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	second, err := b.normalize(raw)
	if err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize is not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

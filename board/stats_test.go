package board

import (
	"fmt"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	created := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	table := &Table{Issues: []Issue{
		{Key: "A-1", Status: "Done", Priority: "High", Assignee: "Ana", Areas: []string{"Dados"}, Quarter: "Q1 2025", Created: created},
		{Key: "A-2", Status: "In Progress", Priority: "High", Assignee: "Ana", Areas: []string{"Dados", "DevOps"}, Quarter: "Q1 2025", Created: created},
		{Key: "A-3", Status: "To Do", Priority: "Medium", Assignee: "Rui", Areas: []string{"Qualidade"}, Quarter: "Q2 2025", Created: created, IsBug: true},
		{Key: "A-4", Status: "Done", Priority: "Medium", Assignee: "Rui", Quarter: "Q2 2025", Created: created},
	}}

	stats := Summarize(table)

	if stats.TotalIssues != 4 {
		t.Errorf("TotalIssues = %d, want 4", stats.TotalIssues)
	}
	if stats.BugCount != 1 {
		t.Errorf("BugCount = %d, want 1", stats.BugCount)
	}
	if stats.OpenIssues != 2 || stats.ClosedIssues != 2 {
		t.Errorf("Open/Closed = %d/%d, want 2/2", stats.OpenIssues, stats.ClosedIssues)
	}
	if stats.ByPriority["High"] != 2 || stats.ByPriority["Medium"] != 2 {
		t.Errorf("ByPriority = %v", stats.ByPriority)
	}
	if stats.ByStatus["Done"] != 2 {
		t.Errorf("ByStatus = %v", stats.ByStatus)
	}
	// Multi-area rows count once under their joined area string.
	if stats.ByArea["Dados, DevOps"] != 1 || stats.ByArea["Dados"] != 1 || stats.ByArea[NoArea] != 1 {
		t.Errorf("ByArea = %v", stats.ByArea)
	}
	if stats.ByQuarter["Q1 2025"] != 2 || stats.ByQuarter["Q2 2025"] != 2 {
		t.Errorf("ByQuarter = %v", stats.ByQuarter)
	}
	if stats.ByAssignee["Ana"] != 2 || stats.ByAssignee["Rui"] != 2 {
		t.Errorf("ByAssignee = %v", stats.ByAssignee)
	}
}

func TestSummarizeEmptyTable(t *testing.T) {
	stats := Summarize(&Table{})
	if stats.TotalIssues != 0 || stats.OpenIssues != 0 || stats.ClosedIssues != 0 {
		t.Errorf("empty table should produce zero counts, got %+v", stats)
	}
}

func TestSummarizeAssigneeTopTen(t *testing.T) {
	created := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	table := &Table{}
	// 12 assignees; assignee-00 has the most issues, assignee-11 the fewest.
	n := 0
	for i := 0; i < 12; i++ {
		for j := 0; j <= 12-i; j++ {
			n++
			table.Issues = append(table.Issues, Issue{
				Key:      fmt.Sprintf("A-%d", n),
				Status:   "To Do",
				Assignee: fmt.Sprintf("assignee-%02d", i),
				Created:  created,
			})
		}
	}

	stats := Summarize(table)

	if len(stats.ByAssignee) != 10 {
		t.Fatalf("ByAssignee has %d entries, want 10", len(stats.ByAssignee))
	}
	if _, ok := stats.ByAssignee["assignee-00"]; !ok {
		t.Error("busiest assignee missing from the top ten")
	}
	for _, dropped := range []string{"assignee-10", "assignee-11"} {
		if _, ok := stats.ByAssignee[dropped]; ok {
			t.Errorf("%s should not make the top ten", dropped)
		}
	}
}

func TestTopKeysOrdering(t *testing.T) {
	counts := map[string]int{"b": 3, "a": 3, "c": 5, "d": 1}

	got := TopKeys(counts, 3)
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TopKeys = %v, want %v", got, want)
		}
	}
}

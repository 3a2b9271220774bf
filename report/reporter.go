package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"aicockpit-dashboard/board"
)

// Export bundles one snapshot for file output.
type Export struct {
	Issues      []board.Issue `json:"issues"`
	Stats       board.Stats   `json:"stats"`
	Warnings    []string      `json:"warnings,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ExportToJSON saves a table snapshot and its statistics to a JSON file
func ExportToJSON(table *board.Table, stats board.Stats, filename string) error {
	export := Export{
		Issues:      table.Issues,
		Stats:       stats,
		Warnings:    table.Warnings,
		GeneratedAt: time.Now(),
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// ExportToCSV saves the table rows to a CSV file
func ExportToCSV(table *board.Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{
		"Key", "Summary", "Status", "Priority", "Assignee", "Reporter",
		"Type", "Areas", "Quarter", "Created", "Updated", "Due Date",
		"Start Date", "Bug",
	})

	for _, issue := range table.Issues {
		writer.Write([]string{
			issue.Key,
			issue.Summary,
			issue.Status,
			issue.Priority,
			issue.Assignee,
			issue.Reporter,
			issue.IssueType,
			issue.AreaLabel(),
			issue.Quarter,
			issue.Created.Format("2006-01-02"),
			issue.Updated.Format("2006-01-02"),
			formatDate(issue.DueDate),
			formatDate(issue.StartDate),
			strconv.FormatBool(issue.IsBug),
		})
	}

	return writer.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// PrintSummary displays a formatted board summary to the console.
// priorityOrder ranks priority names highest-first for display.
func PrintSummary(table *board.Table, stats board.Stats, priorityOrder map[string]int) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("AICOCKPIT BOARD REPORT")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\n📋 ISSUES")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Total Issues: %d (Open: %d, Closed: %d)\n",
		stats.TotalIssues, stats.OpenIssues, stats.ClosedIssues)
	fmt.Printf("Bugs: %d\n", stats.BugCount)

	fmt.Println("\nBy Priority:")
	priorities := make([]string, 0, len(stats.ByPriority))
	for priority := range stats.ByPriority {
		priorities = append(priorities, priority)
	}
	sort.Slice(priorities, func(i, j int) bool {
		return priorityOrder[priorities[i]] > priorityOrder[priorities[j]]
	})
	for _, priority := range priorities {
		fmt.Printf("  - %s: %d\n", priority, stats.ByPriority[priority])
	}

	fmt.Println("\nBy Status:")
	for _, status := range board.TopKeys(stats.ByStatus, len(stats.ByStatus)) {
		fmt.Printf("  - %s: %d\n", status, stats.ByStatus[status])
	}

	fmt.Println("\nBy Area:")
	for _, area := range board.TopKeys(stats.ByArea, len(stats.ByArea)) {
		fmt.Printf("  - %s: %d\n", area, stats.ByArea[area])
	}

	fmt.Println("\nBy Quarter:")
	quarters := make([]string, 0, len(stats.ByQuarter))
	for quarter := range stats.ByQuarter {
		quarters = append(quarters, quarter)
	}
	sortQuarters(quarters)
	for _, quarter := range quarters {
		fmt.Printf("  - %s: %d\n", quarter, stats.ByQuarter[quarter])
	}

	fmt.Println("\nTop Assignees:")
	for _, assignee := range board.TopKeys(stats.ByAssignee, 10) {
		fmt.Printf("  - %s: %d issues\n", assignee, stats.ByAssignee[assignee])
	}

	if len(table.Warnings) > 0 {
		fmt.Println("\n⚠️  Warnings:")
		for _, warning := range table.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
}

// sortQuarters orders "Qn YYYY" labels chronologically.
func sortQuarters(quarters []string) {
	sort.Slice(quarters, func(i, j int) bool {
		yi, qi := parseQuarter(quarters[i])
		yj, qj := parseQuarter(quarters[j])
		if yi != yj {
			return yi < yj
		}
		return qi < qj
	})
}

func parseQuarter(label string) (year, quarter int) {
	fmt.Sscanf(label, "Q%d %d", &quarter, &year)
	return year, quarter
}

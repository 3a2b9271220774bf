package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"aicockpit-dashboard/board"
	"aicockpit-dashboard/config"
	"aicockpit-dashboard/jira"
	"aicockpit-dashboard/report"
	"aicockpit-dashboard/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aicockpit",
		Short: "Read-only analytics dashboard for a Jira board",
		Long: "aicockpit fetches a Jira project's work items, normalizes their\n" +
			"labels and dates into a canonical table and serves status, priority,\n" +
			"quarter and Gantt aggregates over HTTP or as one-shot reports.",
	}

	rootCmd.AddCommand(serveCmd(), reportCmd(), checkAuthCmd(), sampleConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadAndVerify loads configuration and proves the credentials work.
// A credential failure is fatal: no table is ever built without a
// verified session.
func loadAndVerify() (*config.Config, *jira.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client := jira.NewClient(cfg)
	user, err := client.CurrentUser()
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Authenticated as %s", user.DisplayName)

	return cfg, client, nil
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadAndVerify()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.HTTP.Port
			}

			server := web.NewServer(cfg, board.NewBuilder(client, cfg))

			log.Printf("🚀 Starting AICockpit Dashboard API on port %s", port)
			log.Printf("📊 Available endpoints:")
			log.Printf("   GET /health - Health check")
			log.Printf("   GET /api/issues - Normalized board table")
			log.Printf("   GET /api/gantt - Gantt timeline intervals")
			log.Printf("   GET /api/stats - Board statistics")
			log.Printf("   GET /api/incidents - Incident table")
			log.Printf("   GET /api/bugs - Bug table")

			return server.Start(port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (defaults to http.port)")
	return cmd
}

func reportCmd() *cobra.Command {
	var jsonFile, csvFile string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch the board once and export a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadAndVerify()
			if err != nil {
				return err
			}

			fmt.Printf("Fetching board data for project %s...\n", cfg.ProjectKey)

			builder := board.NewBuilder(client, cfg)
			table := builder.BuildBoard(cfg.ProjectKey)
			stats := board.Summarize(table)

			report.PrintSummary(table, stats, cfg.PriorityOrder)

			if err := report.ExportToJSON(table, stats, jsonFile); err != nil {
				log.Printf("Error exporting to JSON: %v", err)
			} else {
				fmt.Printf("✅ Board exported to: %s\n", jsonFile)
			}

			if err := report.ExportToCSV(table, csvFile); err != nil {
				log.Printf("Error exporting to CSV: %v", err)
			} else {
				fmt.Printf("✅ Board exported to: %s\n", csvFile)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&jsonFile, "json", "board.json", "JSON export path")
	cmd.Flags().StringVar(&csvFile, "csv", "board.csv", "CSV export path")
	return cmd
}

func sampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config",
		Short: "Write a sample aicockpit.yaml to edit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateSample("aicockpit.sample.yaml"); err != nil {
				return err
			}
			fmt.Println("✅ Sample configuration file created: aicockpit.sample.yaml")
			fmt.Println("\nEdit this file with your Jira details and rename to aicockpit.yaml")
			return nil
		},
	}
}

func checkAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-auth",
		Short: "Verify the configured Jira credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			user, err := jira.NewClient(cfg).CurrentUser()
			if err != nil {
				return err
			}

			fmt.Printf("✅ Authenticated as %s (%s)\n", user.DisplayName, user.EmailAddress)
			return nil
		},
	}
}

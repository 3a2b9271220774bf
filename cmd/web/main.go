package main

import (
	"flag"
	"log"

	"aicockpit-dashboard/board"
	"aicockpit-dashboard/config"
	"aicockpit-dashboard/jira"
	"aicockpit-dashboard/web"
)

func main() {
	// Parse command line flags
	var port string
	flag.StringVar(&port, "port", "", "Port to run the server on")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}
	if port == "" {
		port = cfg.HTTP.Port
	}

	client := jira.NewClient(cfg)
	if _, err := client.CurrentUser(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	server := web.NewServer(cfg, board.NewBuilder(client, cfg))
	log.Printf("🚀 Starting AICockpit Dashboard API on port %s", port)
	if err := server.Start(port); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}

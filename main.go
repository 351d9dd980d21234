package main

import (
	"fmt"
	"os"
	"strings"

	"journal/app/repositories"
	"journal/config"
	"journal/routes"

	"github.com/sirupsen/logrus"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("journal version %s\n", cliVersion)
	case "serve":
		serve()
	case "init":
		initDb()
	case "clean":
		clean()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: journal <command> [options]

Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the journal service.
  init                           Initialize a new empty database.
  clean                          Remove the journal database.

Environment:
  JOURNAL_ADDR                   Listen address (default :8080).
  JOURNAL_DB_PATH                Badger database path (default data/badger).
`
	fmt.Println(helpText)
}

// serve starts the journal service
func serve() {
	cfg := config.Load()

	db, err := repositories.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	router := routes.SetupRoutes(db)

	logrus.WithField("addr", cfg.Addr).Info("Starting journal service")
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		logrus.Fatalf("Server error: %v", err)
	}
}

// initDb initializes a new empty database
func initDb() {
	cfg := config.Load()

	if _, err := os.Stat(cfg.DBPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		logrus.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := repositories.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	db.Close()
	fmt.Println("Database initialized successfully")
}

// clean removes the database
func clean() {
	cfg := config.Load()

	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(cfg.DBPath); err != nil {
		logrus.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")
}

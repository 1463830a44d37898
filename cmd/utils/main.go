package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/appetiteclub/pos/cmd/utils/internal/commands"
	"github.com/aquamarinepk/aqm"
)

const (
	appName    = "pos-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	config, err := aqm.LoadConfig("UTILS", os.Args[2:])
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logLevel, _ := config.GetString("log.level")
	if logLevel == "" {
		logLevel = "info"
	}
	logger := aqm.NewLogger(logLevel)

	ctx := context.Background()
	command := os.Args[1]

	switch command {
	case "validate-seed":
		if err := commands.ValidateSeed(ctx, config, logger); err != nil {
			log.Fatalf("Seed validation failed: %v", err)
		}

	case "demo-report":
		if err := commands.DemoReport(ctx, config, logger); err != nil {
			log.Fatalf("Demo report failed: %v", err)
		}

	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - POS utility commands

Usage:
  %s <command> [options]

Commands:
  validate-seed  Apply the seed file to an empty session and report what landed
  demo-report    Seed a session, play demo orders and export the xlsx report
  version        Print version information
  help           Show this help message

Environment Variables:
  UTILS_SEED_FILE     Seed document path (default: seed.yaml)
  UTILS_REPORT_FILE   Report output path (default: pos-demo-report.xlsx)
  UTILS_LOG_LEVEL     Log level: debug, info, warn, error (default: info)

Examples:
  %s validate-seed
  UTILS_REPORT_FILE=/tmp/friday.xlsx %s demo-report

`, appName, appName, appName, appName)
}

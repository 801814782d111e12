package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fabwerk90/second-brain-collector/internal/chunker"
	"github.com/fabwerk90/second-brain-collector/internal/config"
	"github.com/fabwerk90/second-brain-collector/internal/kindle"
	"github.com/fabwerk90/second-brain-collector/internal/logger"
	"github.com/fabwerk90/second-brain-collector/internal/notion"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <highlights-file> [config-file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	inputFile := flag.Arg(0)
	if inputFile == "" {
		fmt.Println("Error: highlights file is required")
		flag.Usage()
		os.Exit(1)
	}

	configFile := config.ResolvePath(flag.Arg(1))

	// Load .env file if present
	_ = godotenv.Load()

	// Initialize logger
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	if err := logger.Init(logLevel); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", err, map[string]interface{}{
			"config_file": configFile,
		})
		os.Exit(1)
	}

	// Parse the highlights export
	extractor := kindle.New()
	if err := extractor.ParseFile(inputFile); err != nil {
		logger.Error("Failed to parse highlights file", err, map[string]interface{}{
			"input_file": inputFile,
		})
		os.Exit(1)
	}

	highlights := extractor.Highlights()
	if len(highlights) == 0 {
		logger.Warn("No highlights found in export", map[string]interface{}{
			"input_file": inputFile,
		})
		return
	}

	client := notion.New(cfg)
	ctx := context.Background()
	pageTitle := extractor.Book().PageTitle()

	// Create the book page
	pageID, err := client.CreateBookPage(ctx, pageTitle)
	if err != nil {
		logger.Error("Failed to create book page", err, map[string]interface{}{
			"title": pageTitle,
		})
		os.Exit(1)
	}

	// Create the highlight database under it
	databaseID, err := client.CreateHighlightDatabase(ctx, pageID)
	if err != nil {
		logger.Error("Failed to create highlight database", err, nil)
		os.Exit(1)
	}

	// Archive the raw export text on a child page
	rawChunks := chunker.Split(extractor.Raw(), cfg.ChunkSize)
	if err := client.ArchiveRawText(ctx, pageID, rawChunks); err != nil {
		logger.Error("Failed to archive raw export text", err, nil)
		os.Exit(1)
	}

	// Add one database row per highlight
	successCount, err := client.AddHighlights(ctx, databaseID, highlights)
	if err != nil {
		logger.Error("Failed to add highlights", err, nil)
		os.Exit(1)
	}

	logger.Info("Highlights processed", map[string]interface{}{
		"book":          pageTitle,
		"total":         len(highlights),
		"success_count": successCount,
		"failure_count": len(highlights) - successCount,
	})
}

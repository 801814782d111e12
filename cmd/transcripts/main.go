package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fabwerk90/second-brain-collector/internal/chunker"
	"github.com/fabwerk90/second-brain-collector/internal/config"
	"github.com/fabwerk90/second-brain-collector/internal/logger"
	"github.com/fabwerk90/second-brain-collector/internal/models"
	"github.com/fabwerk90/second-brain-collector/internal/notion"
	"github.com/fabwerk90/second-brain-collector/internal/youtube"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file (optional if NOTION_TOKEN and NOTION_DATABASE_ID are set)")
	flag.Parse()

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

	cfg, err := config.Load(config.ResolvePath(*configFile))
	if err != nil {
		logger.Error("Failed to load configuration", err, nil)
		os.Exit(1)
	}

	client := notion.New(cfg)
	fetcher := youtube.NewFetcher(cfg.TranscriptLanguage)
	ctx := context.Background()

	pages, err := client.ListVideoPages(ctx)
	if err != nil {
		logger.Error("Failed to list video pages", err, nil)
		os.Exit(1)
	}

	logger.Info(fmt.Sprintf("Found %d pages with Category = YouTube", len(pages)), nil)

	successCount := 0
	for _, page := range pages {
		if err := processVideoPage(ctx, client, fetcher, cfg.ChunkSize, page); err != nil {
			logger.Error("Failed to process video page", err, map[string]interface{}{
				"page_id": page.PageID,
				"url":     page.URL,
			})
			continue
		}
		successCount++
	}

	logger.Info("Transcript run completed", map[string]interface{}{
		"total_pages":   len(pages),
		"success_count": successCount,
		"failure_count": len(pages) - successCount,
	})
}

// processVideoPage fetches the transcript for one page and replaces the
// page's content with the chunked transcript.
func processVideoPage(ctx context.Context, client *notion.Client, fetcher *youtube.Fetcher, chunkSize int, page models.VideoPage) error {
	videoID, err := youtube.ExtractVideoID(page.URL)
	if err != nil {
		return err
	}

	logger.Info("Processing video", map[string]interface{}{
		"page_id":  page.PageID,
		"video_id": videoID,
	})

	transcript, err := fetcher.Fetch(ctx, videoID)
	if err != nil {
		return err
	}

	chunks := chunker.Split(transcript, chunkSize)
	logger.Debug("Transcript split into chunks", map[string]interface{}{
		"video_id":     videoID,
		"chunks_count": len(chunks),
	})

	return client.ReplacePageContent(ctx, page.PageID, chunks)
}

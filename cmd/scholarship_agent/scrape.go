package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
	"github.com/jonathan/scholarship-tracker/internal/scraping"
)

var (
	scrapeAPIKey     string
	scrapeNoBrowser  bool
	scrapeConcurrent int
	scrapeVerbose    bool
	scrapeDryRun     bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [urls...]",
	Short: "Scrape scholarship pages into the database",
	Long:  `Fetch scholarship listing pages, extract structured records with the LLM, and store them as scholarships. Pass one or more URLs as arguments.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	scrapeCmd.Flags().BoolVar(&scrapeNoBrowser, "no-browser", false, "Disable headless browser fallback for JavaScript-heavy pages")
	scrapeCmd.Flags().IntVar(&scrapeConcurrent, "concurrency", 3, "Number of pages to scrape concurrently")
	scrapeCmd.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Print detailed progress")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "Extract and print records without writing to the database")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	apiKey := scrapeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
	}

	ctx := context.Background()

	var database *db.DB
	if !scrapeDryRun {
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required")
		}
		var err error
		database, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	}

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	opts := scraping.DefaultOptions()
	opts.UseBrowser = !scrapeNoBrowser
	opts.Verbose = scrapeVerbose
	scraper := scraping.NewScraper(llmClient, opts)

	if scrapeConcurrent < 1 {
		scrapeConcurrent = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(scrapeConcurrent)

	var mu sync.Mutex
	created := 0
	failed := 0

	for _, pageURL := range args {
		g.Go(func() error {
			input, err := scraper.Scrape(gCtx, pageURL)
			if err != nil {
				// One bad page should not abort the batch
				mu.Lock()
				failed++
				mu.Unlock()
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to scrape %s: %v\n", pageURL, err)
				return nil
			}

			if scrapeDryRun {
				mu.Lock()
				created++
				mu.Unlock()
				fmt.Fprintf(cmd.OutOrStdout(), "Extracted %q from %s\n", input.Title, pageURL)
				return nil
			}

			id, err := database.CreateScholarship(gCtx, *input)
			if err != nil {
				return fmt.Errorf("failed to store scholarship from %s: %w", pageURL, err)
			}

			mu.Lock()
			created++
			mu.Unlock()
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", input.Title, id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scraped %d of %d pages\n", created, len(args))
	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(args))
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/scholarship-tracker/internal/db"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load scholarships from a JSON file",
	Long:  `Load scholarship records from a JSON file into the database. The file holds an array of scholarship objects.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the scholarships JSON file (required)")
	if err := seedCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", seedFile, err)
	}

	var inputs []db.ScholarshipInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("seed file contains no scholarships")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	created := 0
	for i := range inputs {
		input := &inputs[i]
		if input.Title == "" || input.Provider == "" {
			return fmt.Errorf("scholarship %d: title and provider are required", i)
		}
		if input.Status == "" {
			input.Status = db.ScholarshipStatusOpen
		}

		id, err := database.CreateScholarship(ctx, *input)
		if err != nil {
			return fmt.Errorf("failed to create scholarship %q: %w", input.Title, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", input.Title, id)
		created++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d scholarships\n", created)
	return nil
}

// Package main provides the entry point for the Scholarship Tracker HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scholarship_agent",
	Short: "Scholarship Tracker HTTP API Server",
	Long:  "Scholarship Tracker helps students discover scholarships, check eligibility, and work through the essay, group case study, and interview stages via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the entry point for the interview progression engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Adaptive mock-interview scoring and progression engine",
	Long:  "interview_agent scores free-text interview answers across five dimensions, adapts question difficulty, tracks recurring weak skills, and generates readiness scores and four-week improvement roadmaps.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

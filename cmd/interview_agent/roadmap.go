package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/roadmap"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate and print a user's four-week improvement plan",
	Long: `Generates a four-week improvement roadmap from the user's recorded weak skills and
latest session aggregates, stores it, and prints it. With --latest the most recently
stored plan is printed instead of generating a new one.`,
	RunE: runRoadmap,
}

var (
	roadmapConfigPath string
	roadmapUserID     string
	roadmapLatest     bool
	roadmapVerbose    bool
)

func init() {
	roadmapCmd.Flags().StringVar(&roadmapConfigPath, "config", "", "Path to config.json file")
	roadmapCmd.Flags().StringVarP(&roadmapUserID, "user", "u", "", "User UUID (required)")
	roadmapCmd.Flags().BoolVar(&roadmapLatest, "latest", false, "Print the most recently stored plan without generating")
	roadmapCmd.Flags().BoolVarP(&roadmapVerbose, "verbose", "v", false, "Print a formatted plan instead of raw JSON")
	_ = roadmapCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, roadmapConfigPath, "")
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	userID, err := uuid.Parse(roadmapUserID)
	if err != nil {
		return fmt.Errorf("invalid --user UUID: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	engine := roadmap.NewEngine(database)

	var plan roadmap.Plan
	if roadmapLatest {
		stored, err := engine.Latest(ctx, userID)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("no roadmap stored for user %s", userID)
		}
		plan = *stored
	} else {
		plan = engine.GenerateAndStore(ctx, userID)
	}

	if roadmapVerbose {
		observability.NewPrinter(os.Stdout).PrintRoadmap(&plan)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return nil
}

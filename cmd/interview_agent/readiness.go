package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/readiness"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Recompute and print a user's readiness index",
	RunE:  runReadiness,
}

var (
	readinessConfigPath string
	readinessUserID     string
	readinessShowOnly   bool
)

func init() {
	readinessCmd.Flags().StringVar(&readinessConfigPath, "config", "", "Path to config.json file")
	readinessCmd.Flags().StringVarP(&readinessUserID, "user", "u", "", "User UUID (required)")
	readinessCmd.Flags().BoolVar(&readinessShowOnly, "show", false, "Print the stored score without recomputing")
	_ = readinessCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(readinessCmd)
}

func runReadiness(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, readinessConfigPath, "")
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	userID, err := uuid.Parse(readinessUserID)
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

	engine := readiness.NewEngine(database)

	var score float64
	if readinessShowOnly {
		score, err = engine.GetReadinessScore(ctx, userID)
	} else {
		score, err = engine.UpdateReadinessIndex(ctx, userID)
	}
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintReadiness(score)
	return nil
}

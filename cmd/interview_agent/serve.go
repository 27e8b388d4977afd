package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveProvider   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for sessions, answer evaluation, adaptive difficulty, weak-skill memory, readiness and roadmaps.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Model provider: gemini, openai or mock (defaults to LLM_PROVIDER env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, serveConfigPath, serveProvider)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		cfg.Port = servePort
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" && cfg.Provider != "mock" {
		return fmt.Errorf("a model API key is required (set LLM_API_KEY, GEMINI_API_KEY or OPENAI_API_KEY)")
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		DatabaseURL:    cfg.DatabaseURL,
		APIKey:         cfg.APIKey,
		Provider:       cfg.Provider,
		RoadmapEvery:   cfg.RoadmapEvery,
		ReadinessEvery: cfg.ReadinessEvery,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// resolveConfig merges the optional config file, environment variables and
// the shared provider flag into one validated configuration.
func resolveConfig(cmd *cobra.Command, configPath, providerFlag string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if cmd.Flags().Changed("provider") {
		cfg.Provider = providerFlag
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

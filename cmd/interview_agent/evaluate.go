package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/evaluation"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/observability"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a single interview answer",
	Long: `Evaluates one free-text answer end-to-end: builds the scoring prompt, calls the model,
validates the output, persists the response and updated session aggregates, and prints the result.

When --session is omitted a new session is created for the given user.`,
	RunE: runEvaluate,
}

var (
	evalConfigPath string
	evalProvider   string
	evalUserID     string
	evalSessionID  string
	evalRole       string
	evalCategory   string
	evalMode       string
	evalPreset     string
	evalDifficulty string
	evalQuestion   string
	evalAnswer     string
	evalVerbose    bool
)

func init() {
	evaluateCmd.Flags().StringVar(&evalConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	evaluateCmd.Flags().StringVar(&evalProvider, "provider", "", "Model provider: gemini, openai or mock (defaults to LLM_PROVIDER env var)")
	evaluateCmd.Flags().StringVarP(&evalUserID, "user", "u", "", "User UUID (required)")
	evaluateCmd.Flags().StringVarP(&evalSessionID, "session", "s", "", "Existing session UUID (optional; a new session is created when omitted)")
	evaluateCmd.Flags().StringVarP(&evalRole, "role", "r", "software engineer", "Target role for the interview persona")
	evaluateCmd.Flags().StringVarP(&evalCategory, "category", "c", "general", "Question category")
	evaluateCmd.Flags().StringVarP(&evalMode, "mode", "m", "normal", "Interview mode: normal, stress or company")
	evaluateCmd.Flags().StringVar(&evalPreset, "company-preset", "", "Company preset for company mode (google, amazon, meta, startup, consulting)")
	evaluateCmd.Flags().StringVarP(&evalDifficulty, "difficulty", "d", "medium", "Question difficulty: easy, medium or hard")
	evaluateCmd.Flags().StringVarP(&evalQuestion, "question", "q", "", "Question text (required)")
	evaluateCmd.Flags().StringVarP(&evalAnswer, "answer", "a", "", "Candidate answer text (required)")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print formatted score boxes instead of raw JSON")

	_ = evaluateCmd.MarkFlagRequired("user")
	_ = evaluateCmd.MarkFlagRequired("question")
	_ = evaluateCmd.MarkFlagRequired("answer")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, evalConfigPath, evalProvider)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	userID, err := uuid.Parse(evalUserID)
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

	client, err := llm.NewClient(ctx, llm.ConfigForProvider(llm.Provider(cfg.Provider)), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	session, err := resolveSession(ctx, database, userID)
	if err != nil {
		return err
	}

	service := evaluation.NewService(database, client)
	result := service.EvaluateResponse(ctx, evaluation.EvaluationRequest{
		SessionID:     session.ID,
		UserID:        userID,
		QuestionText:  evalQuestion,
		UserAnswer:    evalAnswer,
		Role:          session.Role,
		Category:      session.Category,
		Difficulty:    session.Difficulty,
		Mode:          session.Mode,
		CompanyPreset: session.CompanyPreset,
	})

	if evalVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintValidationDefects(result.ValidationErrors)
		printer.PrintScoreRecord(&result.Evaluation)
		printer.PrintSessionAverages(&result.SessionAverages)
	} else {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}

	if !result.Success {
		return fmt.Errorf("evaluation could not be persisted: %s", result.Error)
	}
	return nil
}

// resolveSession loads the session named by --session, or creates a fresh
// one from the evaluate flags.
func resolveSession(ctx context.Context, database *db.DB, userID uuid.UUID) (*db.Session, error) {
	if evalSessionID != "" {
		sessionID, err := uuid.Parse(evalSessionID)
		if err != nil {
			return nil, fmt.Errorf("invalid --session UUID: %w", err)
		}
		session, err := database.GetSession(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		}
		return session, nil
	}

	session, err := database.CreateSession(ctx, db.SessionCreateInput{
		UserID:        userID,
		Role:          evalRole,
		Category:      evalCategory,
		Mode:          evalMode,
		CompanyPreset: evalPreset,
		Difficulty:    evalDifficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

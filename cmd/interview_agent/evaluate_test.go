package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	// Missing all required flags for 'evaluate'
	cmd := exec.Command(binaryPath, "evaluate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag")
}

func TestEvaluateCommand_InvalidUserUUID(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "evaluate",
		"--user", "not-a-uuid",
		"--question", "What is a mutex?",
		"--answer", "A mutual exclusion lock.",
		"--provider", "mock")
	cmd.Env = append(cmd.Environ(), "DATABASE_URL=postgres://localhost:5432/interview_prep_test")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "invalid --user UUID")
}

func TestEvaluateCommand_UnknownProvider(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "evaluate",
		"--user", "550e8400-e29b-41d4-a716-446655440000",
		"--question", "What is a mutex?",
		"--answer", "A mutual exclusion lock.",
		"--provider", "claude")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "provider")
}

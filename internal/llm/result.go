package llm

import "context"

// CallResult is the uniform outcome of one scoring call. Backend-specific
// failures (network, auth, malformed responses) are normalized into this
// shape at the Call boundary so upstream code branches on a single error
// channel instead of provider exceptions.
type CallResult struct {
	Success bool
	Content string
	Error   string
}

// Call sends a prompt to the client and converts any failure into a
// CallResult with Success=false. It never returns a Go error; this is the
// sole point where heterogeneous backend failures are normalized.
func Call(ctx context.Context, client Client, prompt string, tier ModelTier) CallResult {
	if client == nil {
		return CallResult{Success: false, Error: "no LLM client configured"}
	}

	content, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return CallResult{Success: false, Error: err.Error()}
	}

	return CallResult{Success: true, Content: content}
}

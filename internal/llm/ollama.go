package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/huimingz/commitbuddy/internal/log"
)

const (
	// OllamaDefaultBaseURL is the default address of a local Ollama server
	OllamaDefaultBaseURL = "http://localhost:11434"

	ollamaGeneratePath = "/api/generate"

	// maxOllamaResponseBytes bounds how much of a response body is read
	maxOllamaResponseBytes = 4 << 20
)

// OllamaProvider implements Provider for a local Ollama server using its
// native HTTP API. No credential is needed.
type OllamaProvider struct {
	cfg    ProviderConfig
	client *http.Client
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(cfg ProviderConfig) *OllamaProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = OllamaDefaultBaseURL
	}
	return &OllamaProvider{cfg: cfg, client: http.DefaultClient}
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return ProviderOllama
}

// RequiresCredential reports that Ollama runs without an API key
func (p *OllamaProvider) RequiresCredential() bool {
	return false
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	Error           string `json:"error,omitempty"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// Generate POSTs the prompt to /api/generate with streaming disabled
func (p *OllamaProvider) Generate(ctx context.Context, prompt, modelName string, temperature float32) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  modelName,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumPredict:  ResponseTokenLimit,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := ollamaURL(p.cfg.Endpoint)
	log.DebugRequest(http.MethodPost, url, map[string]interface{}{
		"model":   modelName,
		"options": reqBody.Options,
		"prompt":  fmt.Sprintf("(%d bytes)", len(prompt)),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOllamaResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	log.DebugResponse(resp.StatusCode, string(body))

	var out ollamaGenerateResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if decodeErr == nil && out.Error != "" {
			detail = out.Error
		}
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, detail)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}

	log.DebugTokenUsage(out.PromptEvalCount, out.EvalCount, out.PromptEvalCount+out.EvalCount)
	return out.Response, nil
}

// ollamaURL accepts both the bare server address and the OpenAI-compatible /v1 form
func ollamaURL(endpoint string) string {
	base := strings.TrimRight(endpoint, "/")
	base = strings.TrimSuffix(base, "/v1")
	return base + ollamaGeneratePath
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// OllamaClient is a minimal client for the local Ollama generate API used
// for primary item extraction
type OllamaClient struct {
	baseURL     string
	model       string
	temperature float64
	numPredict  int
	client      *http.Client
}

// NewOllamaClient creates an Ollama client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewOllamaClient(cfg *config.OllamaConfig) *OllamaClient {
	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OLLAMA_URL")
		if base == "" {
			base = "http://localhost:11434"
		}
	}

	model := "llama3.2:3b"
	temperature := 0.3
	numPredict := 500
	timeout := 30 * time.Second
	if cfg != nil {
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.Temperature > 0 {
			temperature = cfg.Temperature
		}
		if cfg.NumPredict > 0 {
			numPredict = cfg.NumPredict
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	return &OllamaClient{
		baseURL:     base,
		model:       model,
		temperature: temperature,
		numPredict:  numPredict,
		client:      &http.Client{Timeout: timeout},
	}
}

// GenerateRequest is the shape for Ollama generate requests
type GenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Format  string                 `json:"format,omitempty"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// GenerateResponse is a minimal response shape
type GenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends the prompt to Ollama and returns the raw model output.
// Transport failures map to AI_UPSTREAM_UNAVAILABLE, undecodable bodies
// to AI_MALFORMED_RESPONSE.
func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: map[string]interface{}{
			"temperature": o.temperature,
			"num_predict": o.numPredict,
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := o.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", errors.ErrUpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", errors.ErrUpstreamUnavailable(fmt.Errorf("ollama returned status %d", resp.StatusCode))
	}

	var gr GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", errors.ErrMalformedResponse(err)
	}
	if gr.Response == "" {
		return "", errors.ErrMalformedResponse(fmt.Errorf("empty response from ollama"))
	}
	return gr.Response, nil
}

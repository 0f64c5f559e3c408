package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// ChatClient is a minimal client for OpenAI-compatible inference servers
// (vLLM, TGI, llama.cpp server, hosted gateways)
type ChatClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewChatClient creates a chat client using values from the provided config
func NewChatClient(cfg *config.LLMConfig) *ChatClient {
	var apiKey, base string
	timeout := 2 * time.Minute
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		if cfg.CallTimeout > 0 {
			timeout = cfg.CallTimeout
		}
	}
	if base == "" {
		base = "http://localhost:8001"
	}

	return &ChatClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one turn of a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateOptions controls sampling for one call
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Ping checks that the backend answers and serves the requested model.
// An empty model list is accepted since some servers do not enumerate.
func (c *ChatClient) Ping(ctx context.Context, model Model) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/models", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("llm returned status %d", resp.StatusCode)
	}

	var list modelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return fmt.Errorf("malformed model list: %w", err)
	}
	if len(list.Data) == 0 {
		return nil
	}
	for _, m := range list.Data {
		if strings.EqualFold(m.ID, model.Path()) {
			return nil
		}
	}
	return fmt.Errorf("model %s is not served by %s", model.Path(), c.baseURL)
}

// Generate sends a single-turn prompt and returns the assistant content
func (c *ChatClient) Generate(ctx context.Context, model Model, prompt string, opts GenerateOptions) (string, error) {
	reqBody := ChatRequest{
		Model:       model.Path(),
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("llm returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from llm")
	}
	return cr.Choices[0].Message.Content, nil
}

func (c *ChatClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"insight/internal/port"
)

// Options configures a chat completion Client.
type Options struct {
	Model       string
	BaseURL     string
	APIKeyEnv   string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client calls an OpenAI-compatible /chat/completions endpoint.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

var _ port.LLM = (*Client)(nil)

// New creates a chat client for an OpenAI-compatible API. The API key is
// read from the environment variable named in opts.
func New(opts Options) (*Client, error) {
	apiKey := os.Getenv(opts.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", opts.APIKeyEnv)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	return newClient(apiKey, opts), nil
}

// NewOllama creates a chat client for a local Ollama server.
func NewOllama(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:11434/v1"
	}
	return newClient("ollama", opts)
}

func newClient(apiKey string, opts Options) *Client {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2000
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	return &Client{
		apiKey:      apiKey,
		model:       opts.Model,
		baseURL:     opts.BaseURL,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		client:      &http.Client{Timeout: opts.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Generate generates text based on the prompt.
func (c *Client) Generate(prompt string) (string, error) {
	return c.chat([]chatMessage{{Role: "user", Content: prompt}})
}

// GenerateWithSystem generates text with a system prompt.
func (c *Client) GenerateWithSystem(systemPrompt, userPrompt string) (string, error) {
	return c.chat([]chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	})
}

func (c *Client) chat(messages []chatMessage) (string, error) {
	jsonData, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("chat API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (c *Client) ModelName() string {
	return c.model
}

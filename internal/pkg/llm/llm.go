// Package llm OpenAI 兼容的 chat completions 客户端，生成简历修改建议
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

const defaultSummary = "LLM did not provide a detailed summary. Try running again."

var (
	ErrNoChoices  = errors.New("llm returned no choices")
	ErrUnparsable = errors.New("llm returned unparsable JSON")
)

// Change 一条修改建议，Type 为 ADD / REVISE / REMOVE
type Change struct {
	Type          string  `json:"type"`
	Section       string  `json:"section"`
	TargetText    *string `json:"targetText"`
	SuggestedText string  `json:"suggestedText"`
	Reason        string  `json:"reason"`
}

type Suggestions struct {
	Summary string   `json:"summary"`
	Changes []Change `json:"changes"`
}

type Client struct {
	client      *resty.Client
	model       string
	temperature float64
}

func NewClient(cfg *config.LLMConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetTimeout(cfg.Timeout)
	return &Client{client: client, model: cfg.Model, temperature: cfg.Temperature}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Suggest 对比简历与职位描述，返回结构化建议
func (c *Client) Suggest(ctx context.Context, resumeText, jobDescription string) (*Suggestions, error) {
	var result chatResponse
	var apiErr apiError
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: buildPrompt(resumeText, jobDescription)},
			},
			ResponseFormat: responseFormat{Type: "json_object"},
			Temperature:    c.temperature,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("llm status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, ErrNoChoices
	}

	return parseSuggestions(result.Choices[0].Message.Content)
}

func parseSuggestions(raw string) (*Suggestions, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}

	var s Suggestions
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	if s.Summary == "" {
		s.Summary = defaultSummary
	}
	if s.Changes == nil {
		s.Changes = []Change{}
	}
	return &s, nil
}

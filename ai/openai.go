package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/metrics"
	"github.com/grantdesk-api/models"
)

const defaultTimeout = 60 * time.Second

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// OpenAIClient calls an OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	client    *req.Client
	model     string
	maxTokens int
	agents    config.AgentsFile
}

// NewOpenAIClient creates a client for cfg.BaseURL authenticated with cfg.OpenAIKey
func NewOpenAIClient(cfg config.AIConfig, agents config.AgentsFile) *OpenAIClient {
	client := req.C().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(defaultTimeout).
		SetCommonBearerAuthToken(cfg.OpenAIKey).
		SetUserAgent("grantdesk-api")

	return &OpenAIClient{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		agents:    agents,
	}
}

// profile returns the system prompt and temperature for agent
func (c *OpenAIClient) profile(agent models.Agent) config.AgentProfile {
	if p, ok := c.agents.Agents[agent]; ok {
		return p
	}
	return config.AgentProfile{SystemPrompt: c.agents.FallbackPrompt, Temperature: 0.5}
}

// Complete sends one system + user exchange and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, agent models.Agent, prompt string, fields ContextFields) (string, error) {
	profile := c.profile(agent)
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: profile.SystemPrompt},
			{Role: "user", Content: UserContent(prompt, fields)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: profile.Temperature,
	}

	start := time.Now()
	text, err := c.post(ctx, body)
	metrics.AICompletionSeconds.WithLabelValues(string(agent)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AICompletions.WithLabelValues(string(agent), "error").Inc()
		klog.ErrorS(err, "AI completion failed", "agent", agent)
		return "", err
	}

	metrics.AICompletions.WithLabelValues(string(agent), "ok").Inc()
	klog.V(2).InfoS("AI completion", "agent", agent, "chars", len(text))
	return text, nil
}

func (c *OpenAIClient) post(ctx context.Context, body chatRequest) (string, error) {
	var result chatResponse
	var errResult chatError

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&body).
		SetSuccessResult(&result).
		SetErrorResult(&errResult).
		Post("/chat/completions")
	if err != nil {
		return "", apperr.Service(err, "AI call failed")
	}
	if resp.IsErrorState() {
		msg := errResult.Error.Message
		if msg == "" {
			msg = resp.Status
		}
		return "", apperr.Service(fmt.Errorf("status %d: %s", resp.StatusCode, msg), "AI call failed")
	}
	if len(result.Choices) == 0 {
		return "", apperr.Service(nil, "AI call returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

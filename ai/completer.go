// Package ai talks to the language model behind the four assistant agents
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/models"
)

// Completer produces an agent's reply to a prompt
type Completer interface {
	Complete(ctx context.Context, agent models.Agent, prompt string, fields ContextFields) (string, error)
}

// ContextFields is optional background prepended to the user prompt
type ContextFields struct {
	Domain             string
	Interests          []string
	ProjectDetails     string
	IdeaDetails        string
	ApplicationDetails string
}

// UserContent joins the context block and the prompt into one user message
func UserContent(prompt string, fields ContextFields) string {
	var b strings.Builder
	if fields.Domain != "" {
		fmt.Fprintf(&b, "User domain: %s\n", fields.Domain)
	}
	if len(fields.Interests) > 0 {
		fmt.Fprintf(&b, "User interests: %s\n", strings.Join(fields.Interests, ", "))
	}
	if fields.ProjectDetails != "" {
		fmt.Fprintf(&b, "Project details: %s\n", fields.ProjectDetails)
	}
	if fields.IdeaDetails != "" {
		fmt.Fprintf(&b, "Idea details: %s\n", fields.IdeaDetails)
	}
	if fields.ApplicationDetails != "" {
		fmt.Fprintf(&b, "Application details: %s\n", fields.ApplicationDetails)
	}
	if b.Len() == 0 {
		return prompt
	}
	return b.String() + "\n\n" + prompt
}

// Services reports which completion providers have credentials configured
type Services struct {
	OpenAI    bool `json:"openai"`
	Anthropic bool `json:"anthropic"`
	GoogleAI  bool `json:"googleai"`
}

// AvailableServices inspects the configured provider keys
func AvailableServices(cfg config.AIConfig) Services {
	return Services{
		OpenAI:    cfg.OpenAIKey != "",
		Anthropic: cfg.AnthropicKey != "",
		GoogleAI:  cfg.GoogleKey != "",
	}
}

// New builds the completer selected by AI_PROVIDER
func New(cfg config.AIConfig, agents config.AgentsFile) (Completer, error) {
	switch cfg.Provider {
	case "static":
		return NewStaticCompleter(), nil
	case "openai", "":
		return NewOpenAIClient(cfg, agents), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

package ai

import (
	"context"
	"fmt"

	"github.com/grantdesk-api/models"
)

// StaticCompleter answers without a model, for local development
type StaticCompleter struct{}

// NewStaticCompleter creates a StaticCompleter
func NewStaticCompleter() *StaticCompleter {
	return &StaticCompleter{}
}

func (StaticCompleter) Complete(ctx context.Context, agent models.Agent, prompt string, _ ContextFields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s] %s", agent, prompt), nil
}

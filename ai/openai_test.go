package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/models"
)

func newTestClient(url string) *OpenAIClient {
	return NewOpenAIClient(config.AIConfig{
		BaseURL:   url,
		Model:     "test-model",
		MaxTokens: 1000,
		OpenAIKey: "sk-test",
	}, config.DefaultAgents())
}

func TestOpenAIClientSendsAgentProfile(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"A bold idea"}}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Complete(context.Background(), models.AgentIdeanikkari, "Give me ideas",
		ContextFields{Domain: "health", Interests: []string{"ai", "data"}})
	require.NoError(t, err)
	assert.Equal(t, "A bold idea", text)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.InDelta(t, 0.8, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Ideanikkari")
	assert.Equal(t, "User domain: health\nUser interests: ai, data\n\n\nGive me ideas", got.Messages[1].Content)
}

func TestOpenAIClientUsesLowerTemperatureForReviewers(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), models.AgentRahoittaja, "review", ContextFields{})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.Temperature, 0.0001)
	assert.Equal(t, "review", got.Messages[1].Content)
}

func TestOpenAIClientFailureIsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), models.AgentArvioija, "x", ContextFields{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindServiceError, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenAIClientEmptyChoicesIsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), models.AgentHakija, "x", ContextFields{})
	assert.ErrorIs(t, err, apperr.ErrServiceError)
}

func TestAvailableServices(t *testing.T) {
	got := AvailableServices(config.AIConfig{OpenAIKey: "k", GoogleKey: "g"})
	assert.Equal(t, Services{OpenAI: true, GoogleAI: true}, got)
}

func TestNewSelectsProvider(t *testing.T) {
	c, err := New(config.AIConfig{Provider: "static"}, config.DefaultAgents())
	require.NoError(t, err)
	assert.IsType(t, &StaticCompleter{}, c)

	_, err = New(config.AIConfig{Provider: "carrier-pigeon"}, config.DefaultAgents())
	assert.Error(t, err)
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grantdesk-api/models"
)

// AgentProfile is the system prompt and sampling setup of one AI agent
type AgentProfile struct {
	SystemPrompt string  `yaml:"systemPrompt"`
	Temperature  float64 `yaml:"temperature"`
}

// ReviewDefaults are the lists recorded with a funder review when the
// response is not parsed for them
type ReviewDefaults struct {
	Strengths    []string `yaml:"strengths"`
	Weaknesses   []string `yaml:"weaknesses"`
	Improvements []string `yaml:"improvements"`
}

// AgentsFile is the YAML document pointed to by AI_AGENTS_FILE
type AgentsFile struct {
	Agents         map[models.Agent]AgentProfile `yaml:"agents"`
	FallbackPrompt string                        `yaml:"fallbackPrompt"`
	Review         ReviewDefaults                `yaml:"review"`
}

// DefaultAgents returns the built-in agent setup
func DefaultAgents() AgentsFile {
	return AgentsFile{
		Agents: map[models.Agent]AgentProfile{
			models.AgentIdeanikkari: {
				SystemPrompt: "You are Ideanikkari, an AI agent that helps ideate innovative funding applications " +
					"for the Digital Europe Programme. Create creative, feasible ideas that fit the programme priorities: " +
					"artificial intelligence, cybersecurity, advanced digital skills and digital infrastructure. " +
					"Base your ideas on the user's domain and interests.",
				Temperature: 0.8,
			},
			models.AgentArvioija: {
				SystemPrompt: "You are Arvioija, an AI agent that critically evaluates ideas aimed at the Digital Europe Programme. " +
					"Analyse strengths and weaknesses and give constructive suggestions. Judge innovativeness, " +
					"feasibility and impact against the programme criteria.",
				Temperature: 0.5,
			},
			models.AgentHakija: {
				SystemPrompt: "You are Hakija, an AI agent that turns ideas into formal Digital Europe Programme applications. " +
					"Produce structured, convincing text covering project description, objectives, work plan, " +
					"indicators, budget, partners and impact assessment.",
				Temperature: 0.5,
			},
			models.AgentRahoittaja: {
				SystemPrompt: "You are Rahoittaja, an AI agent that reviews Digital Europe Programme applications from the funder's " +
					"point of view. Assess relevance, impact, feasibility, innovation and cost efficiency. " +
					"Give an overall score (0-100) and detailed feedback for every section.",
				Temperature: 0.5,
			},
		},
		FallbackPrompt: "You are an AI agent assisting with Digital Europe Programme funding matters.",
		Review: ReviewDefaults{
			Strengths:    []string{"Strong innovation dimension"},
			Weaknesses:   []string{"Implementation plan could be more specific"},
			Improvements: []string{"Add concrete impact indicators"},
		},
	}
}

// LoadAgents returns the built-in setup overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadAgents(path string) (AgentsFile, error) {
	agents := DefaultAgents()
	if path == "" {
		return agents, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return agents, fmt.Errorf("failed to read agents file: %w", err)
	}

	var override AgentsFile
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return agents, fmt.Errorf("failed to parse agents file: %w", err)
	}

	for name, profile := range override.Agents {
		if !name.IsAI() {
			return agents, fmt.Errorf("agents file: unknown agent %q", name)
		}
		base := agents.Agents[name]
		if profile.SystemPrompt != "" {
			base.SystemPrompt = profile.SystemPrompt
		}
		if profile.Temperature != 0 {
			base.Temperature = profile.Temperature
		}
		agents.Agents[name] = base
	}
	if override.FallbackPrompt != "" {
		agents.FallbackPrompt = override.FallbackPrompt
	}
	if len(override.Review.Strengths) > 0 {
		agents.Review.Strengths = override.Review.Strengths
	}
	if len(override.Review.Weaknesses) > 0 {
		agents.Review.Weaknesses = override.Review.Weaknesses
	}
	if len(override.Review.Improvements) > 0 {
		agents.Review.Improvements = override.Review.Improvements
	}

	return agents, nil
}

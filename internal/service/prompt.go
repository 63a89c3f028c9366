package service

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

// Prompt is the request payload sent to the model.
type Prompt struct {
	System string
	User   string
}

// PromptTemplates holds the fixed instructions. User is a text/template
// receiving .CV and .JobDescription.
type PromptTemplates struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`

	user *template.Template
}

// DefaultPromptTemplates parses the templates embedded in the binary.
func DefaultPromptTemplates() (*PromptTemplates, error) {
	return ParsePromptTemplates(defaultPromptsYAML)
}

func ParsePromptTemplates(raw []byte) (*PromptTemplates, error) {
	var t PromptTemplates
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode prompt templates: %w", err)
	}
	if strings.TrimSpace(t.System) == "" || strings.TrimSpace(t.User) == "" {
		return nil, fmt.Errorf("prompt templates: system and user are required")
	}
	tmpl, err := template.New("user").Option("missingkey=error").Parse(t.User)
	if err != nil {
		return nil, fmt.Errorf("parse user prompt template: %w", err)
	}
	t.user = tmpl
	return &t, nil
}

// BuildPrompt fills the user template with both extracted texts.
func BuildPrompt(t *PromptTemplates, cvText, jobDescriptionText string) (Prompt, error) {
	var sb strings.Builder
	data := struct {
		CV             string
		JobDescription string
	}{CV: cvText, JobDescription: jobDescriptionText}
	if err := t.user.Execute(&sb, data); err != nil {
		return Prompt{}, fmt.Errorf("render user prompt: %w", err)
	}
	return Prompt{System: strings.TrimSpace(t.System), User: sb.String()}, nil
}

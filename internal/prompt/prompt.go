// Package prompt manages the named answer templates from config.yaml.
package prompt

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"

	"simplegpt/internal/config"
)

// DefaultName identifies the built-in template used when a query names no
// prompt, or names one that is not configured.
const DefaultName = "default"

const defaultTemplate = `Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know, don't try to make up an answer.

{{.context}}

Question: {{.question}}
Helpful Answer:`

// Registry holds the configured prompt templates plus the built-in default.
type Registry struct {
	templates map[string]prompts.PromptTemplate
	order     []string
}

// NewRegistry builds the registry from configured prompts. The default
// template is always present and cannot be shadowed away, but a configured
// prompt named "default" replaces its text.
func NewRegistry(configured []config.Prompt) *Registry {
	r := &Registry{templates: make(map[string]prompts.PromptTemplate)}
	r.add(DefaultName, defaultTemplate)
	for _, p := range configured {
		r.add(p.Name, p.Template)
	}
	return r
}

func (r *Registry) add(name, template string) {
	if _, exists := r.templates[name]; !exists {
		r.order = append(r.order, name)
	}
	r.templates[name] = prompts.NewPromptTemplate(template, []string{"context", "question"})
}

// Render fills the named template with the retrieved context and the user's
// question. An empty or unknown name falls back to the default template.
func (r *Registry) Render(name, context, question string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates[DefaultName]
	}

	out, err := tmpl.Format(map[string]any{
		"context":  context,
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", name, err)
	}
	return out, nil
}

// Names returns the available prompt names, default first, then the
// configured prompts in config order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

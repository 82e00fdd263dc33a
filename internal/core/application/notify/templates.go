package notify

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"

	"ordertrack/internal/core/domain/model/event"
)

//go:embed templates.yaml
var defaultTemplates []byte

var ErrTemplateIsMissing = errors.New("no template for event")

type templateSource struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
}

type compiled struct {
	title   *template.Template
	message *template.Template
}

// Templates renders the title and message of a notification from its event.
type Templates struct {
	byKey map[string]compiled
}

// DefaultTemplates parses the embedded table. It panics on a malformed table, which can
// only happen on a broken build.
func DefaultTemplates() *Templates {
	t, err := ParseTemplates(defaultTemplates)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTemplates reads a YAML template table.
func ParseTemplates(raw []byte) (*Templates, error) {
	var sources map[string]templateSource
	if err := yaml.Unmarshal(raw, &sources); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	t := &Templates{byKey: make(map[string]compiled, len(sources))}
	for key, src := range sources {
		title, err := template.New(key + ".title").Option("missingkey=error").Parse(src.Title)
		if err != nil {
			return nil, fmt.Errorf("parse %s title: %w", key, err)
		}
		message, err := template.New(key + ".message").Option("missingkey=error").Parse(src.Message)
		if err != nil {
			return nil, fmt.Errorf("parse %s message: %w", key, err)
		}
		t.byKey[key] = compiled{title: title, message: message}
	}
	return t, nil
}

// Render returns title and message for ev.
func (t *Templates) Render(ev event.Event) (string, string, error) {
	c, ok := t.lookup(ev)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrTemplateIsMissing, ev.Kind)
	}

	var title, message bytes.Buffer
	if err := c.title.Execute(&title, ev); err != nil {
		return "", "", err
	}
	if err := c.message.Execute(&message, ev); err != nil {
		return "", "", err
	}
	return title.String(), message.String(), nil
}

func (t *Templates) lookup(ev event.Event) (compiled, bool) {
	if ev.Kind == event.StatusChanged {
		if c, ok := t.byKey[ev.Kind.String()+":"+ev.New]; ok {
			return c, true
		}
	}
	c, ok := t.byKey[ev.Kind.String()]
	return c, ok
}

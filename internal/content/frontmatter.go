package content

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata contract every deep-dive document exposes.
// Absent fields decode to their zero values; use WithDefaults before rendering.
type Frontmatter struct {
	Title          string   `yaml:"title" toml:"title" json:"title"`
	Themes         []string `yaml:"themes" toml:"themes" json:"themes"`
	Tools          []string `yaml:"tools" toml:"tools" json:"tools"`
	ImpactSnapshot []string `yaml:"impactSnapshot" toml:"impactSnapshot" json:"impactSnapshot"`
}

// WithDefaults returns a copy with the title falling back to fallbackTitle
// and every absent list replaced by an empty one.
func (f Frontmatter) WithDefaults(fallbackTitle string) Frontmatter {
	out := Frontmatter{
		Title:          strings.TrimSpace(f.Title),
		Themes:         nonNil(f.Themes),
		Tools:          nonNil(f.Tools),
		ImpactSnapshot: nonNil(f.ImpactSnapshot),
	}
	if out.Title == "" {
		out.Title = fallbackTitle
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

const (
	yamlDelim = "---"
	tomlDelim = "+++"
)

// parseDocument splits raw into frontmatter and body. A leading "---" block
// is decoded as YAML, a leading "+++" block as TOML. Text without either
// delimiter is all body.
func parseDocument(raw string) (Frontmatter, string, error) {
	content := strings.TrimLeft(raw, "\ufeff \t\r\n")

	var delim string
	switch {
	case strings.HasPrefix(content, yamlDelim):
		delim = yamlDelim
	case strings.HasPrefix(content, tomlDelim):
		delim = tomlDelim
	default:
		return Frontmatter{}, raw, nil
	}

	rest := content[len(delim):]
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return Frontmatter{}, "", fmt.Errorf("missing closing %s frontmatter delimiter", delim)
	}
	block := rest[:idx]
	body := rest[idx+1+len(delim):]
	body = strings.TrimPrefix(strings.TrimPrefix(body, "\r"), "\n")

	var fm Frontmatter
	if delim == yamlDelim {
		if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
			return Frontmatter{}, "", fmt.Errorf("parsing YAML frontmatter: %w", err)
		}
	} else {
		if err := toml.Unmarshal([]byte(block), &fm); err != nil {
			return Frontmatter{}, "", fmt.Errorf("parsing TOML frontmatter: %w", err)
		}
	}
	return fm, body, nil
}

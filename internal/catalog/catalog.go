// Package catalog holds the built-in template and component libraries.
// Both are embedded YAML files parsed once at startup.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yml
var templatesYAML []byte

//go:embed components.yml
var componentsYAML []byte

// Template describes a starting point a new project can be created from.
type Template struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Emoji       string `yaml:"emoji" json:"emoji"`
	PreviewURL  string `yaml:"preview_url" json:"preview_url,omitempty"`
}

// TemplateContent is the editor payload for a template.
type TemplateContent struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	HTMLContent    string         `json:"html_content"`
	CSSContent     string         `json:"css_content"`
	JSContent      string         `json:"js_content"`
	ElementsTree   map[string]any `json:"elements_tree"`
	CanvasSettings map[string]any `json:"canvas_settings"`
}

// Component describes a draggable building block in the editor palette.
type Component struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Category    string         `yaml:"category" json:"category"`
	Description string         `yaml:"description" json:"description"`
	Icon        string         `yaml:"icon" json:"icon"`
	Properties  map[string]any `yaml:"properties" json:"properties"`
}

type templateFile struct {
	Templates  []Template `yaml:"templates"`
	Categories []string   `yaml:"categories"`
}

var (
	templates          []Template
	templateCategories []string
	components         map[string][]Component
	componentOrder     = []string{"layout", "text", "media", "forms", "ui", "advanced"}
)

func init() {
	var tf templateFile
	if err := yaml.Unmarshal(templatesYAML, &tf); err != nil {
		panic(fmt.Sprintf("catalog: invalid templates.yml: %v", err))
	}
	templates = tf.Templates
	templateCategories = tf.Categories

	if err := yaml.Unmarshal(componentsYAML, &components); err != nil {
		panic(fmt.Sprintf("catalog: invalid components.yml: %v", err))
	}
}

// Templates returns the built-in template catalog.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateCategories returns the known template categories.
func TemplateCategories() []string {
	out := make([]string, len(templateCategories))
	copy(out, templateCategories)
	return out
}

// TemplateByID returns the built-in template with the given ID.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// TemplateContentByID returns the editor payload for a built-in template.
func TemplateContentByID(id string) (TemplateContent, bool) {
	t, ok := TemplateByID(id)
	if !ok {
		return TemplateContent{}, false
	}
	return TemplateContent{
		ID:           t.ID,
		Name:         t.Name,
		HTMLContent:  fmt.Sprintf("<!-- %s template -->", t.Name),
		CSSContent:   "/* Template styles */",
		JSContent:    "// Template scripts",
		ElementsTree: map[string]any{},
		CanvasSettings: map[string]any{
			"width":      "100%",
			"responsive": true,
		},
	}, true
}

// Components returns the component library keyed by category.
func Components() map[string][]Component {
	out := make(map[string][]Component, len(components))
	for k, v := range components {
		out[k] = v
	}
	return out
}

// ComponentCategories returns the component categories in palette order.
func ComponentCategories() []string {
	out := make([]string, 0, len(componentOrder))
	for _, c := range componentOrder {
		if _, ok := components[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ComponentsByCategory returns the components in one category.
func ComponentsByCategory(category string) ([]Component, bool) {
	list, ok := components[category]
	return list, ok
}

// ComponentByID returns a single component from a category.
func ComponentByID(category, id string) (Component, bool) {
	list, ok := components[category]
	if !ok {
		return Component{}, false
	}
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

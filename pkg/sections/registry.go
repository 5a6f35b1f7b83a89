// Package sections holds the catalog of section descriptors the external
// page-composition host can place on the page.
package sections

import (
	"github.com/pkg/errors"
)

// Option describes one recognized per-section configuration key.
type Option struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Min         int    `json:"min,omitempty"`
	Max         int    `json:"max,omitempty"`
}

// Descriptor describes one placeable section to the composition host.
type Descriptor struct {
	ID            string            `json:"id"`
	Label         string            `json:"label"`
	Description   string            `json:"description"`
	Icon          string            `json:"icon"`
	DataEndpoint  string            `json:"dataEndpoint"`
	DefaultConfig map[string]any    `json:"defaultConfig"`
	ConfigSchema  map[string]Option `json:"configSchema"`
}

// Registry is the enumerable catalog of section descriptors. It is built by
// the composition root and injected where needed; there is no ambient
// package-level registry.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// NewRegistry creates a registry pre-populated with the built-in sections.
func NewRegistry() (r *Registry) {
	r = &Registry{byID: map[string]Descriptor{}}
	for _, descriptor := range builtins() {
		// Built-in ids are unique by construction.
		_ = r.Register(descriptor)
	}
	return r
}

// Register adds a descriptor to the catalog. Duplicate ids are rejected so
// a host cannot silently shadow a built-in section.
func (r *Registry) Register(descriptor Descriptor) (err error) {
	if descriptor.ID == "" {
		err = errors.New("section descriptor requires an id")
		return err
	}
	if _, exists := r.byID[descriptor.ID]; exists {
		err = errors.Errorf("section already registered: %s", descriptor.ID)
		return err
	}

	r.byID[descriptor.ID] = descriptor
	r.order = append(r.order, descriptor.ID)
	return err
}

// List returns the descriptors in registration order.
func (r *Registry) List() (descriptors []Descriptor) {
	descriptors = make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, r.byID[id])
	}
	return descriptors
}

// Get looks a descriptor up by id.
func (r *Registry) Get(id string) (descriptor Descriptor, found bool) {
	descriptor, found = r.byID[id]
	return descriptor, found
}

// builtins returns the fixed catalog of sections the profile document can
// supply data for, plus the static content type.
func builtins() (descriptors []Descriptor) {
	descriptors = []Descriptor{
		{
			ID:           "experience",
			Label:        "Work Experience",
			Description:  "Positions from the work history, in display order.",
			Icon:         "briefcase",
			DataEndpoint: "/api/profile",
			DefaultConfig: map[string]any{
				"maxItems":       0,
				"showHighlights": true,
			},
			ConfigSchema: map[string]Option{
				"maxItems":       {Type: "number", Description: "Limit shown entries, 0 for all", Min: 0, Max: 50},
				"showHighlights": {Type: "boolean", Description: "Render highlight bullets"},
				"filter":         {Type: "string", Description: "Restrict to a classifier (personal or work)"},
			},
		},
		{
			ID:           "projects",
			Label:        "Projects",
			Description:  "Project list with technologies and status.",
			Icon:         "code",
			DataEndpoint: "/api/profile",
			DefaultConfig: map[string]any{
				"maxItems": 0,
			},
			ConfigSchema: map[string]Option{
				"maxItems": {Type: "number", Description: "Limit shown entries, 0 for all", Min: 0, Max: 50},
				"filter":   {Type: "string", Description: "Restrict to a classifier (personal or work)"},
			},
		},
		{
			ID:           "skills",
			Label:        "Skills",
			Description:  "Skill categories with their items.",
			Icon:         "wrench",
			DataEndpoint: "/api/profile",
			DefaultConfig: map[string]any{
				"showCategories": true,
			},
			ConfigSchema: map[string]Option{
				"showCategories": {Type: "boolean", Description: "Group items under category headings"},
				"filter":         {Type: "string", Description: "Restrict to a classifier (personal or work)"},
			},
		},
		{
			ID:           "education",
			Label:        "Education",
			Description:  "Degrees and courses of study.",
			Icon:         "graduation-cap",
			DataEndpoint: "/api/profile",
			DefaultConfig: map[string]any{},
			ConfigSchema: map[string]Option{
				"maxItems": {Type: "number", Description: "Limit shown entries, 0 for all", Min: 0, Max: 50},
			},
		},
		{
			ID:           "languages",
			Label:        "Languages",
			Description:  "Spoken languages with proficiency levels.",
			Icon:         "globe",
			DataEndpoint: "/api/profile",
			DefaultConfig: map[string]any{},
			ConfigSchema:  map[string]Option{},
		},
		{
			ID:           "interests",
			Label:        "Interests",
			Description:  "Interest categories with their items.",
			Icon:         "heart",
			DataEndpoint: "/api/profile",
			DefaultConfig: map[string]any{},
			ConfigSchema: map[string]Option{
				"filter": {Type: "string", Description: "Restrict to a classifier (personal or work)"},
			},
		},
		{
			ID:           "custom",
			Label:        "Custom Content",
			Description:  "Free-form static content, no profile data.",
			Icon:         "file-text",
			DataEndpoint: "",
			DefaultConfig: map[string]any{
				"content": "",
			},
			ConfigSchema: map[string]Option{
				"content": {Type: "string", Description: "Markdown content to render"},
			},
		},
	}
	return descriptors
}

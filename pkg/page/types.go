// Package page holds the page composition document: which sections appear
// on the rendered profile page, in what order, and under which layout.
package page

import (
	"time"
)

// Key is the fixed store key under which the singleton layout document lives.
const Key = "layout"

// Layout variants. Anything else coerces to LayoutSingleColumn on save.
const (
	LayoutSingleColumn  = "single-column"
	LayoutTwoColumn     = "two-column"
	LayoutFullWidthHero = "full-width-hero"
)

// Document is the singleton page composition document.
type Document struct {
	ID        string    `json:"id,omitempty"`
	Layout    string    `json:"layout"`
	Hero      Hero      `json:"hero"`
	Sections  []Section `json:"sections"`
	Sidebar   []Section `json:"sidebar"`
	Footer    []Section `json:"footer"`
	Identity  *Identity `json:"identity,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Hero configures the page header block.
type Hero struct {
	Enabled    bool `json:"enabled"`
	ShowSocial bool `json:"showSocial"`
}

// Section is one placed section: a type identifier registered with the
// page-composition host plus its per-placement configuration. The type is
// not validated here; unknown identifiers are the host's concern.
type Section struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}

// Identity is the optional identity block shown alongside the page.
type Identity struct {
	Name        string       `json:"name,omitempty"`
	Avatar      string       `json:"avatar,omitempty"`
	Title       string       `json:"title,omitempty"`
	Pronoun     string       `json:"pronoun,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Description string       `json:"description,omitempty"`
	Locality    string       `json:"locality,omitempty"`
	Country     string       `json:"country,omitempty"`
	Org         string       `json:"org,omitempty"`
	URL         string       `json:"url,omitempty"`
	Email       string       `json:"email,omitempty"`
	KeyURL      string       `json:"keyUrl,omitempty"`
	Social      []SocialLink `json:"social,omitempty"`
}

// SocialLink is one entry of the identity block's social list.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Rel  string `json:"rel,omitempty"`
	Icon string `json:"icon,omitempty"`
}

// DefaultDocument returns the layout used when nothing has been configured
// yet and a mutation needs a starting point.
func DefaultDocument() (doc Document) {
	doc = Document{
		Layout:   LayoutSingleColumn,
		Hero:     Hero{Enabled: true, ShowSocial: true},
		Sections: []Section{},
		Sidebar:  []Section{},
		Footer:   []Section{},
	}
	return doc
}

// NormalizeLayout coerces an unknown layout value to single-column.
func NormalizeLayout(layout string) (normalized string) {
	switch layout {
	case LayoutSingleColumn, LayoutTwoColumn, LayoutFullWidthHero:
		normalized = layout
	default:
		normalized = LayoutSingleColumn
	}
	return normalized
}

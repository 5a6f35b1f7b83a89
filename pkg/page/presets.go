package page

// Preset is a named structural template a layout document may match. Only
// the layout variant and the ordered type sequences participate in matching;
// per-section config payloads do not.
type Preset struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Layout   string   `json:"layout"`
	Sections []string `json:"sections"`
	Sidebar  []string `json:"sidebar"`
}

// Catalog returns the fixed, ordered preset catalog. Matching walks this
// order and the first hit wins, so broader presets belong later.
func Catalog() (presets []Preset) {
	presets = []Preset{
		{
			ID:       "classic",
			Label:    "Classic",
			Layout:   LayoutSingleColumn,
			Sections: []string{"experience", "projects", "skills", "education"},
			Sidebar:  []string{},
		},
		{
			ID:       "split",
			Label:    "Split",
			Layout:   LayoutTwoColumn,
			Sections: []string{"experience", "projects", "education"},
			Sidebar:  []string{"skills", "languages", "interests"},
		},
		{
			ID:       "showcase",
			Label:    "Showcase",
			Layout:   LayoutFullWidthHero,
			Sections: []string{"projects", "experience", "skills"},
			Sidebar:  []string{},
		},
		{
			ID:       "minimal",
			Label:    "Minimal",
			Layout:   LayoutSingleColumn,
			Sections: []string{"experience", "education"},
			Sidebar:  []string{},
		},
	}
	return presets
}

// FindPreset looks a preset up by id.
func FindPreset(id string) (preset Preset, found bool) {
	for _, candidate := range Catalog() {
		if candidate.ID == id {
			preset = candidate
			found = true
			return preset, found
		}
	}
	return preset, found
}

// MatchPreset returns the id of the first catalog preset the document
// structurally equals, walking the catalog in its fixed order.
func MatchPreset(doc Document) (id string, matched bool) {
	id, matched = matchCatalog(doc, Catalog())
	return id, matched
}

// matchCatalog walks the given presets in order and returns the first
// structural match.
func matchCatalog(doc Document, presets []Preset) (id string, matched bool) {
	for _, preset := range presets {
		if matchesPreset(doc, preset) {
			id = preset.ID
			matched = true
			return id, matched
		}
	}
	return id, matched
}

// matchesPreset compares the structural fingerprint: layout, section type
// sequence, and sidebar type sequence.
func matchesPreset(doc Document, preset Preset) (matches bool) {
	if doc.Layout != preset.Layout {
		return matches
	}
	if !sameTypeSequence(doc.Sections, preset.Sections) {
		return matches
	}
	if !sameTypeSequence(doc.Sidebar, preset.Sidebar) {
		return matches
	}
	matches = true
	return matches
}

// sameTypeSequence reports whether the placed sections carry exactly the
// given type values, same length, same order.
func sameTypeSequence(sections []Section, types []string) (same bool) {
	if len(sections) != len(types) {
		return same
	}
	for i, section := range sections {
		if section.Type != types[i] {
			return same
		}
	}
	same = true
	return same
}

// Package profile holds the structured profile document and the repository
// operations that mutate it.
package profile

import (
	"encoding/json"
	"time"
)

// Key is the fixed store key under which the singleton profile document lives.
const Key = "profile"

// Classifier values attached to entries and categories.
const (
	ClassifierPersonal = "personal"
	ClassifierWork     = "work"
)

// Names of the ordered list sections of the document.
const (
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionEducation  = "education"
	SectionLanguages  = "languages"
)

// Names of the category-keyed sections of the document.
const (
	SectionSkills    = "skills"
	SectionInterests = "interests"
)

// Document is the singleton profile document. It is always persisted as a
// whole unit; there are no partial updates.
type Document struct {
	ID            string            `json:"id,omitempty"`
	Experience    []ExperienceEntry `json:"experience"`
	Projects      []ProjectEntry    `json:"projects"`
	Skills        CategoryMap       `json:"skills"`
	SkillTypes    TypeMap           `json:"skillTypes"`
	Education     []EducationEntry  `json:"education"`
	Languages     []LanguageEntry   `json:"languages"`
	Interests     Interests         `json:"interests"`
	InterestTypes TypeMap           `json:"interestTypes"`
	LastUpdated   time.Time         `json:"lastUpdated"`
}

// ExperienceEntry is a single position in the work history.
type ExperienceEntry struct {
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate,omitempty"`
	EmploymentType string     `json:"employmentType"`
	Classification string     `json:"classification"`
	Description    string     `json:"description"`
	Highlights     StringList `json:"highlights"`
}

// ProjectEntry is a single project.
type ProjectEntry struct {
	Name           string     `json:"name"`
	URL            string     `json:"url"`
	Description    string     `json:"description"`
	Technologies   StringList `json:"technologies"`
	Status         string     `json:"status"`
	Classification string     `json:"classification"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate,omitempty"`
}

// EducationEntry is a single degree or course of study.
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate,omitempty"`
	Classification string `json:"classification"`
	Description    string `json:"description"`
}

// LanguageEntry is a spoken language and proficiency level.
type LanguageEntry struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// DefaultDocument returns the all-empty document used when nothing has been
// stored yet.
func DefaultDocument() (doc Document) {
	doc = Document{
		Experience:    []ExperienceEntry{},
		Projects:      []ProjectEntry{},
		Skills:        CategoryMap{},
		SkillTypes:    TypeMap{},
		Education:     []EducationEntry{},
		Languages:     []LanguageEntry{},
		Interests:     Interests{Groups: CategoryMap{}},
		InterestTypes: TypeMap{},
	}
	return doc
}

// Interests holds the interests section in either its legacy shape (a flat
// ordered list of strings) or the current shape (a map from category name to
// ordered list). Exactly one of the two fields is meaningful: Groups being
// non-nil marks the current shape.
type Interests struct {
	Legacy []string
	Groups CategoryMap
}

// IsLegacy reports whether the section is still in the flat-list shape.
func (i Interests) IsLegacy() (legacy bool) {
	legacy = i.Groups == nil
	return legacy
}

// MarshalJSON emits the current (map) shape when present, the legacy list
// otherwise.
func (i Interests) MarshalJSON() (data []byte, err error) {
	if i.Groups != nil {
		data, err = json.Marshal(i.Groups)
		return data, err
	}
	if i.Legacy == nil {
		data = []byte("[]")
		return data, err
	}
	data, err = json.Marshal(i.Legacy)
	return data, err
}

// UnmarshalJSON accepts either stored shape. Anything that is neither a map
// nor a list is defensively reset to an empty map rather than rejected.
func (i *Interests) UnmarshalJSON(data []byte) (err error) {
	trimmed := bytesTrimLeftSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var groups CategoryMap
		if json.Unmarshal(data, &groups) == nil && groups != nil {
			*i = Interests{Groups: groups}
			return err
		}
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		legacy := []string{}
		var elems []json.RawMessage
		if json.Unmarshal(data, &elems) == nil {
			for _, elem := range elems {
				var s string
				if json.Unmarshal(elem, &s) == nil {
					legacy = append(legacy, s)
				}
			}
			*i = Interests{Legacy: legacy}
			return err
		}
	}

	*i = Interests{Groups: CategoryMap{}}
	return err
}

// CategoryMap maps a user-defined category name to its ordered list of
// items. A malformed stored value decodes to an empty map instead of failing
// the document load.
type CategoryMap map[string]StringList

// UnmarshalJSON decodes an object shape, resetting anything else.
func (m *CategoryMap) UnmarshalJSON(data []byte) (err error) {
	var plain map[string]StringList
	if json.Unmarshal(data, &plain) == nil && plain != nil {
		*m = plain
		return err
	}

	*m = CategoryMap{}
	return err
}

// TypeMap maps a key (category name, or interest string in the legacy shape)
// to its classifier. Malformed stored values decode to an empty map instead
// of failing the document load.
type TypeMap map[string]string

// UnmarshalJSON decodes an object of string values, silently dropping
// anything else.
func (m *TypeMap) UnmarshalJSON(data []byte) (err error) {
	var plain map[string]string
	if json.Unmarshal(data, &plain) == nil && plain != nil {
		*m = plain
		return err
	}

	*m = TypeMap{}
	return err
}

// bytesTrimLeftSpace strips leading JSON whitespace so shape detection can
// look at the first significant byte.
func bytesTrimLeftSpace(data []byte) (out []byte) {
	out = data
	for len(out) > 0 && (out[0] == ' ' || out[0] == '\t' || out[0] == '\n' || out[0] == '\r') {
		out = out[1:]
	}
	return out
}

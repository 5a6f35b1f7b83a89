package page

import (
	"context"
	"encoding/json"
	"time"

	"folio/pkg/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrPresetNotFound is returned when ApplyPreset is asked for an id the
// catalog does not contain.
var ErrPresetNotFound = errors.New("preset not found")

// Exporter receives the final document after every successful save.
type Exporter interface {
	ExportPage(doc Document) (err error)
}

// Repository persists the singleton page composition document.
type Repository struct {
	store    store.Store
	exporter Exporter
	log      *logrus.Logger
	now      func() time.Time
}

// NewRepository creates a page repository. The exporter may be nil.
func NewRepository(st store.Store, exporter Exporter, log *logrus.Logger) (r *Repository) {
	r = &Repository{
		store:    st,
		exporter: exporter,
		log:      log,
		now:      time.Now,
	}
	return r
}

// Load returns the stored document, or nil when the page has never been
// configured. The nil result is what lets the read boundary distinguish
// "never configured" from "configured with defaults".
func (r *Repository) Load(ctx context.Context) (doc *Document, err error) {
	var raw json.RawMessage
	var found bool
	raw, found, err = r.store.Load(ctx, Key)
	if err != nil {
		err = errors.Wrap(err, "failed to load layout document")
		return doc, err
	}

	if !found {
		return doc, err
	}

	doc = &Document{}
	err = json.Unmarshal(raw, doc)
	if err != nil {
		doc = nil
		err = errors.Wrap(err, "failed to decode stored layout document")
		return doc, err
	}

	return doc, err
}

// LoadOrDefault returns the stored document, or the default layout when
// nothing has been stored yet.
func (r *Repository) LoadOrDefault(ctx context.Context) (doc Document, err error) {
	var stored *Document
	stored, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if stored == nil {
		doc = DefaultDocument()
		return doc, err
	}

	doc = *stored
	return doc, err
}

// Save coerces, stamps, and persists the document as a full replacement,
// then notifies the exporter. Export failures are logged, not propagated.
func (r *Repository) Save(ctx context.Context, doc Document) (saved Document, err error) {
	doc.Layout = NormalizeLayout(doc.Layout)
	if doc.Sections == nil {
		doc.Sections = []Section{}
	}
	if doc.Sidebar == nil {
		doc.Sidebar = []Section{}
	}
	if doc.Footer == nil {
		doc.Footer = []Section{}
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.UpdatedAt = r.now().UTC()

	var raw []byte
	raw, err = json.Marshal(doc)
	if err != nil {
		err = errors.Wrap(err, "failed to encode layout document")
		return saved, err
	}

	err = r.store.Save(ctx, Key, raw)
	if err != nil {
		err = errors.Wrap(err, "failed to save layout document")
		return saved, err
	}

	if r.exporter != nil {
		exportErr := r.exporter.ExportPage(doc)
		if exportErr != nil {
			r.log.WithError(exportErr).Error("layout export failed")
		}
	}

	saved = doc
	return saved, err
}

// ApplyPreset replaces the layout, section list, and sidebar list with the
// named preset's structure. The hero, footer, and identity blocks are kept.
// Per-section config of existing placements survives when the preset keeps
// a section of the same type.
func (r *Repository) ApplyPreset(ctx context.Context, id string) (doc Document, err error) {
	preset, found := FindPreset(id)
	if !found {
		err = errors.Wrapf(ErrPresetNotFound, "%s", id)
		return doc, err
	}

	doc, err = r.LoadOrDefault(ctx)
	if err != nil {
		return doc, err
	}

	existing := map[string]map[string]any{}
	for _, section := range append(append([]Section{}, doc.Sections...), doc.Sidebar...) {
		if _, ok := existing[section.Type]; !ok && section.Config != nil {
			existing[section.Type] = section.Config
		}
	}

	doc.Layout = preset.Layout
	doc.Sections = sectionsFromTypes(preset.Sections, existing)
	doc.Sidebar = sectionsFromTypes(preset.Sidebar, existing)

	doc, err = r.Save(ctx, doc)
	return doc, err
}

// sectionsFromTypes builds placements from a preset's type sequence, reusing
// any config the previous composition had for the same type.
func sectionsFromTypes(types []string, existing map[string]map[string]any) (sections []Section) {
	sections = []Section{}
	for _, sectionType := range types {
		sections = append(sections, Section{
			Type:   sectionType,
			Config: existing[sectionType],
		})
	}
	return sections
}

package profile

import (
	"context"
	"encoding/json"
	"time"

	"folio/pkg/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Directions accepted by MoveItem.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Exporter receives the final document after every successful save.
type Exporter interface {
	ExportProfile(doc Document) (err error)
}

// Repository applies mutations to the singleton profile document. Every
// operation is a full load -> mutate -> save cycle; the store only ever sees
// whole-document replacements.
//
// Out-of-range indexes, unknown section names, and undecodable items are
// deliberate silent no-ops: the mutation is skipped but the document is
// still persisted and returned. Callers always get a document back.
type Repository struct {
	store    store.Store
	exporter Exporter
	log      *logrus.Logger
	now      func() time.Time
}

// NewRepository creates a profile repository. The exporter may be nil when
// no export side effect is wanted (tests, one-shot tools).
func NewRepository(st store.Store, exporter Exporter, log *logrus.Logger) (r *Repository) {
	r = &Repository{
		store:    st,
		exporter: exporter,
		log:      log,
		now:      time.Now,
	}
	return r
}

// Load returns the stored document, or the all-empty default if nothing has
// been stored yet. The result is always normalized to the current shape.
func (r *Repository) Load(ctx context.Context) (doc Document, err error) {
	var raw json.RawMessage
	var found bool
	raw, found, err = r.store.Load(ctx, Key)
	if err != nil {
		err = errors.Wrap(err, "failed to load profile document")
		return doc, err
	}

	if !found {
		doc = DefaultDocument()
		return doc, err
	}

	err = json.Unmarshal(raw, &doc)
	if err != nil {
		err = errors.Wrap(err, "failed to decode stored profile document")
		return doc, err
	}

	normalize(&doc)
	return doc, err
}

// save normalizes, stamps, and persists the document, then notifies the
// exporter. Export failures are logged, never propagated: the mutation has
// already been persisted by then.
func (r *Repository) save(ctx context.Context, doc Document) (saved Document, err error) {
	normalize(&doc)

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.LastUpdated = r.now().UTC()

	var raw []byte
	raw, err = json.Marshal(doc)
	if err != nil {
		err = errors.Wrap(err, "failed to encode profile document")
		return saved, err
	}

	err = r.store.Save(ctx, Key, raw)
	if err != nil {
		err = errors.Wrap(err, "failed to save profile document")
		return saved, err
	}

	if r.exporter != nil {
		exportErr := r.exporter.ExportProfile(doc)
		if exportErr != nil {
			r.log.WithError(exportErr).Error("profile export failed")
		}
	}

	saved = doc
	return saved, err
}

// AddItem appends an item to the end of the named ordered section.
// Duplicates are permitted.
func (r *Repository) AddItem(ctx context.Context, section string, item json.RawMessage) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if ops, ok := doc.orderedSection(section); ok {
		if !ops.add(item) {
			r.log.WithField("section", section).Debug("add item skipped: item did not decode")
		}
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// UpdateItem replaces the element at index when the index is in range.
func (r *Repository) UpdateItem(ctx context.Context, section string, index int, item json.RawMessage) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if ops, ok := doc.orderedSection(section); ok {
		if index >= 0 && index < ops.length() {
			ops.set(index, item)
		}
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// RemoveItem deletes the element at index when the index is in range.
func (r *Repository) RemoveItem(ctx context.Context, section string, index int) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if ops, ok := doc.orderedSection(section); ok {
		if index >= 0 && index < ops.length() {
			ops.remove(index)
		}
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// MoveItem swaps the element at index with its neighbor in the given
// direction. Boundary items cannot move further; moving by more than one
// position takes repeated calls.
func (r *Repository) MoveItem(ctx context.Context, section string, index int, direction string) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if ops, ok := doc.orderedSection(section); ok {
		target := -1
		switch direction {
		case MoveUp:
			target = index - 1
		case MoveDown:
			target = index + 1
		}

		n := ops.length()
		if index >= 0 && index < n && target >= 0 && target < n {
			ops.swap(index, target)
		}
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// AddCategory sets a category in the named category-keyed section. An empty
// classifier defaults to personal.
func (r *Repository) AddCategory(ctx context.Context, section, name string, items []string, classifier string) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if categories, types, ok := doc.categorySection(section); ok {
		if classifier == "" {
			classifier = ClassifierPersonal
		}
		categories[name] = StringList(items)
		types[name] = classifier
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// EditCategory renames and updates a category. Rename is delete-then-insert:
// the old key is removed from both maps before the new key is written, so
// renaming onto an existing category's name overwrites that category.
func (r *Repository) EditCategory(ctx context.Context, section, oldName, newName string, items []string, classifier string) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if categories, types, ok := doc.categorySection(section); ok {
		if oldName != newName {
			delete(categories, oldName)
			delete(types, oldName)
		}
		if classifier == "" {
			classifier = ClassifierPersonal
		}
		categories[newName] = StringList(items)
		types[newName] = classifier
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// RemoveCategory deletes a category from both maps. An absent name is a
// no-op.
func (r *Repository) RemoveCategory(ctx context.Context, section, name string) (doc Document, err error) {
	doc, err = r.Load(ctx)
	if err != nil {
		return doc, err
	}

	if categories, types, ok := doc.categorySection(section); ok {
		delete(categories, name)
		delete(types, name)
	}

	doc, err = r.save(ctx, doc)
	return doc, err
}

// sectionOps is the uniform view the ordered-section operations use over a
// typed list.
type sectionOps struct {
	length func() (n int)
	swap   func(i, j int)
	remove func(i int)
	set    func(i int, raw json.RawMessage) (ok bool)
	add    func(raw json.RawMessage) (ok bool)
}

// listOps adapts a typed slice to sectionOps. Items that do not decode into
// the section's entry type report ok=false and leave the list untouched.
func listOps[T any](list *[]T) (ops sectionOps) {
	decode := func(raw json.RawMessage) (item T, ok bool) {
		ok = json.Unmarshal(raw, &item) == nil
		return item, ok
	}

	ops = sectionOps{
		length: func() (n int) {
			n = len(*list)
			return n
		},
		swap: func(i, j int) {
			(*list)[i], (*list)[j] = (*list)[j], (*list)[i]
		},
		remove: func(i int) {
			*list = append((*list)[:i], (*list)[i+1:]...)
		},
		set: func(i int, raw json.RawMessage) (ok bool) {
			var item T
			item, ok = decode(raw)
			if ok {
				(*list)[i] = item
			}
			return ok
		},
		add: func(raw json.RawMessage) (ok bool) {
			var item T
			item, ok = decode(raw)
			if ok {
				*list = append(*list, item)
			}
			return ok
		},
	}
	return ops
}

// orderedSection resolves an ordered-section name to its list accessor.
func (d *Document) orderedSection(name string) (ops sectionOps, ok bool) {
	switch name {
	case SectionExperience:
		ops, ok = listOps(&d.Experience), true
	case SectionProjects:
		ops, ok = listOps(&d.Projects), true
	case SectionEducation:
		ops, ok = listOps(&d.Education), true
	case SectionLanguages:
		ops, ok = listOps(&d.Languages), true
	}
	return ops, ok
}

// categorySection resolves a category-keyed section name to its item map and
// type map. A target map that is not object-shaped (a legacy or malformed
// interests value) is reset to an empty map before use.
func (d *Document) categorySection(name string) (categories CategoryMap, types TypeMap, ok bool) {
	switch name {
	case SectionSkills:
		if d.Skills == nil {
			d.Skills = CategoryMap{}
		}
		if d.SkillTypes == nil {
			d.SkillTypes = TypeMap{}
		}
		categories, types, ok = d.Skills, d.SkillTypes, true
	case SectionInterests:
		if d.Interests.Groups == nil {
			d.Interests = Interests{Groups: CategoryMap{}}
		}
		if d.InterestTypes == nil {
			d.InterestTypes = TypeMap{}
		}
		categories, types, ok = d.Interests.Groups, d.InterestTypes, true
	}
	return categories, types, ok
}

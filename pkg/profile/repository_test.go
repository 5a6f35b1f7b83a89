package profile

import (
	"context"
	"encoding/json"
	"io"
	"reflect"
	"sort"
	"testing"
	"time"

	"folio/pkg/store"

	"github.com/sirupsen/logrus"
)

// newTestRepository builds a repository over an in-memory store with a
// deterministic, strictly increasing clock.
func newTestRepository(t *testing.T) (r *Repository) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	r = NewRepository(store.NewMemoryStore(), nil, log)

	tick := 0
	r.now = func() (now time.Time) {
		tick++
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(tick) * time.Second)
		return now
	}

	return r
}

func experienceJSON(title string) (raw json.RawMessage) {
	raw = json.RawMessage(`{"title":"` + title + `","company":"Acme","classification":"work","highlights":["shipped it"]}`)
	return raw
}

func TestAddItem(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	doc, err := r.AddItem(ctx, SectionExperience, experienceJSON("Engineer"))
	if err != nil {
		t.Fatalf("Failed to add item: %v", err)
	}

	if len(doc.Experience) != 1 {
		t.Fatalf("Expected 1 experience entry, got %d", len(doc.Experience))
	}
	if doc.Experience[0].Title != "Engineer" {
		t.Errorf("Expected title 'Engineer', got '%s'", doc.Experience[0].Title)
	}
	if doc.LastUpdated.IsZero() {
		t.Error("Expected lastUpdated to be stamped")
	}
}

func TestAddItemAllowsDuplicates(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.AddItem(ctx, SectionLanguages, json.RawMessage(`{"name":"German","level":"B2"}`))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := r.AddItem(ctx, SectionLanguages, json.RawMessage(`{"name":"German","level":"B2"}`))
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Languages) != 2 {
		t.Errorf("Expected duplicates to be permitted, got %d entries", len(doc.Languages))
	}
}

func TestAddItemUnknownSection(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	doc, err := r.AddItem(ctx, "awards", json.RawMessage(`{"title":"Best"}`))
	if err != nil {
		t.Fatalf("Expected silent no-op, got error: %v", err)
	}

	if len(doc.Experience)+len(doc.Projects)+len(doc.Education)+len(doc.Languages) != 0 {
		t.Error("Unknown section mutated the document")
	}
	if doc.LastUpdated.IsZero() {
		t.Error("Expected document to still be persisted and stamped")
	}
}

func TestUpdateItemBounds(t *testing.T) {
	tests := []struct {
		name       string
		index      int
		wantChange bool
	}{
		{name: "in range", index: 1, wantChange: true},
		{name: "first", index: 0, wantChange: true},
		{name: "past end", index: 2, wantChange: false},
		{name: "negative", index: -1, wantChange: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepository(t)
			ctx := context.Background()

			for _, title := range []string{"First", "Second"} {
				if _, err := r.AddItem(ctx, SectionExperience, experienceJSON(title)); err != nil {
					t.Fatal(err)
				}
			}

			doc, err := r.UpdateItem(ctx, SectionExperience, tt.index, experienceJSON("Replaced"))
			if err != nil {
				t.Fatalf("Expected silent handling, got error: %v", err)
			}

			replaced := false
			for _, entry := range doc.Experience {
				if entry.Title == "Replaced" {
					replaced = true
				}
			}
			if replaced != tt.wantChange {
				t.Errorf("Expected change=%v, got %v", tt.wantChange, replaced)
			}
			if len(doc.Experience) != 2 {
				t.Errorf("Update changed the list length: %d", len(doc.Experience))
			}
		})
	}
}

func TestRemoveItem(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := r.AddItem(ctx, SectionExperience, experienceJSON(title)); err != nil {
			t.Fatal(err)
		}
	}

	doc, err := r.RemoveItem(ctx, SectionExperience, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Experience) != 2 {
		t.Fatalf("Expected 2 entries after removal, got %d", len(doc.Experience))
	}
	if doc.Experience[0].Title != "First" || doc.Experience[1].Title != "Third" {
		t.Errorf("Wrong entry removed: %s, %s", doc.Experience[0].Title, doc.Experience[1].Title)
	}

	// Out of range is a no-op.
	doc, err = r.RemoveItem(ctx, SectionExperience, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Experience) != 2 {
		t.Errorf("Out-of-range removal changed the list: %d entries", len(doc.Experience))
	}
}

func TestMoveItem(t *testing.T) {
	titles := func(doc Document) (result []string) {
		result = []string{}
		for _, entry := range doc.Experience {
			result = append(result, entry.Title)
		}
		return result
	}

	tests := []struct {
		name      string
		index     int
		direction string
		want      []string
	}{
		{name: "up at top is a no-op", index: 0, direction: MoveUp, want: []string{"A", "B", "C"}},
		{name: "down at bottom is a no-op", index: 2, direction: MoveDown, want: []string{"A", "B", "C"}},
		{name: "up swaps with previous", index: 1, direction: MoveUp, want: []string{"B", "A", "C"}},
		{name: "down swaps with next", index: 1, direction: MoveDown, want: []string{"A", "C", "B"}},
		{name: "unknown direction is a no-op", index: 1, direction: "sideways", want: []string{"A", "B", "C"}},
		{name: "index out of range is a no-op", index: 3, direction: MoveUp, want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepository(t)
			ctx := context.Background()

			for _, title := range []string{"A", "B", "C"} {
				if _, err := r.AddItem(ctx, SectionExperience, experienceJSON(title)); err != nil {
					t.Fatal(err)
				}
			}

			doc, err := r.MoveItem(ctx, SectionExperience, tt.index, tt.direction)
			if err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(titles(doc), tt.want) {
				t.Errorf("Expected order %v, got %v", tt.want, titles(doc))
			}
		})
	}
}

func TestMoveItemBoundaryStillPersists(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	before, err := r.AddItem(ctx, SectionExperience, experienceJSON("Only"))
	if err != nil {
		t.Fatal(err)
	}

	after, err := r.MoveItem(ctx, SectionExperience, 0, MoveUp)
	if err != nil {
		t.Fatal(err)
	}

	if !after.LastUpdated.After(before.LastUpdated) {
		t.Error("Expected boundary move to persist and bump the timestamp")
	}
}

func TestAddCategoryDefaultClassifier(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	doc, err := r.AddCategory(ctx, SectionSkills, "Databases", []string{"PostgreSQL"}, "")
	if err != nil {
		t.Fatal(err)
	}

	if doc.SkillTypes["Databases"] != ClassifierPersonal {
		t.Errorf("Expected default classifier personal, got %s", doc.SkillTypes["Databases"])
	}
}

func TestEditCategoryRename(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.AddCategory(ctx, SectionSkills, "A", []string{"one"}, ClassifierPersonal)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := r.EditCategory(ctx, SectionSkills, "A", "B", []string{"one", "two"}, ClassifierWork)
	if err != nil {
		t.Fatal(err)
	}

	if _, exists := doc.Skills["A"]; exists {
		t.Error("Expected old key to be removed")
	}
	if _, exists := doc.SkillTypes["A"]; exists {
		t.Error("Expected old type key to be removed")
	}
	if !reflect.DeepEqual([]string(doc.Skills["B"]), []string{"one", "two"}) {
		t.Errorf("Expected renamed category contents, got %v", doc.Skills["B"])
	}
	if doc.SkillTypes["B"] != ClassifierWork {
		t.Errorf("Expected classifier work, got %s", doc.SkillTypes["B"])
	}
}

func TestEditCategoryRenameOntoExisting(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	if _, err := r.AddCategory(ctx, SectionSkills, "A", []string{"one"}, ClassifierPersonal); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddCategory(ctx, SectionSkills, "B", []string{"other"}, ClassifierPersonal); err != nil {
		t.Fatal(err)
	}

	// Renaming A onto B overwrites B. Accepted behavior, not guarded.
	doc, err := r.EditCategory(ctx, SectionSkills, "A", "B", []string{"one"}, ClassifierPersonal)
	if err != nil {
		t.Fatal(err)
	}

	if len(doc.Skills) != 1 {
		t.Fatalf("Expected a single category, got %d", len(doc.Skills))
	}
	if !reflect.DeepEqual([]string(doc.Skills["B"]), []string{"one"}) {
		t.Errorf("Expected B to carry A's items, got %v", doc.Skills["B"])
	}
}

func TestRemoveCategoryAbsentName(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	if _, err := r.AddCategory(ctx, SectionSkills, "A", []string{"one"}, ClassifierPersonal); err != nil {
		t.Fatal(err)
	}

	doc, err := r.RemoveCategory(ctx, SectionSkills, "nope")
	if err != nil {
		t.Fatalf("Expected absent name to be a no-op, got error: %v", err)
	}
	if len(doc.Skills) != 1 {
		t.Errorf("No-op removal changed the map: %d categories", len(doc.Skills))
	}
}

func TestSkillKeySetInvariant(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	keySets := func(doc Document) (skills, types []string) {
		for name := range doc.Skills {
			skills = append(skills, name)
		}
		for name := range doc.SkillTypes {
			types = append(types, name)
		}
		sort.Strings(skills)
		sort.Strings(types)
		return skills, types
	}

	steps := []func() (Document, error){
		func() (Document, error) { return r.AddCategory(ctx, SectionSkills, "Languages", []string{"Go"}, "work") },
		func() (Document, error) { return r.AddCategory(ctx, SectionSkills, "Cloud", []string{"AWS"}, "") },
		func() (Document, error) {
			return r.EditCategory(ctx, SectionSkills, "Cloud", "Platforms", []string{"AWS", "GCP"}, "work")
		},
		func() (Document, error) { return r.RemoveCategory(ctx, SectionSkills, "Languages") },
		func() (Document, error) { return r.RemoveCategory(ctx, SectionSkills, "missing") },
	}

	for i, step := range steps {
		doc, err := step()
		if err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
		skills, types := keySets(doc)
		if !reflect.DeepEqual(skills, types) {
			t.Fatalf("Step %d broke the key-set invariant: skills=%v types=%v", i, skills, types)
		}
	}
}

func TestCategoryOpsOnLegacyInterests(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.NewMemoryStore()
	ctx := context.Background()

	// Seed the store with a legacy-shaped document, as an older deployment
	// would have written it.
	legacy := `{"interests":["Chess","Docker"],"interestTypes":{"Docker":"work"}}`
	if err := st.Save(ctx, Key, json.RawMessage(legacy)); err != nil {
		t.Fatal(err)
	}

	r := NewRepository(st, nil, log)

	doc, err := r.AddCategory(ctx, SectionInterests, "Outdoors", []string{"Hiking"}, ClassifierPersonal)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Interests.IsLegacy() {
		t.Fatal("Expected interests to be migrated to the grouped shape")
	}
	if !reflect.DeepEqual([]string(doc.Interests.Groups["Work"]), []string{"Docker"}) {
		t.Errorf("Expected migrated Work group, got %v", doc.Interests.Groups["Work"])
	}
	if !reflect.DeepEqual([]string(doc.Interests.Groups["Outdoors"]), []string{"Hiking"}) {
		t.Errorf("Expected new category alongside migrated groups, got %v", doc.Interests.Groups["Outdoors"])
	}
}

func TestRoundTrip(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	saved, err := r.AddItem(ctx, SectionProjects, json.RawMessage(`{"name":"folio","technologies":["Go"],"status":"active"}`))
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := r.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(saved, loaded) {
		t.Errorf("Round trip mismatch:\nsaved:  %+v\nloaded: %+v", saved, loaded)
	}
}

func TestLoadDefaultWhenAbsent(t *testing.T) {
	r := newTestRepository(t)

	doc, err := r.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if doc.ID != "" {
		t.Error("Expected default document to carry no id")
	}
	if doc.Experience == nil || doc.Skills == nil || doc.Interests.Groups == nil {
		t.Error("Expected default document to have empty, non-nil sections")
	}
}

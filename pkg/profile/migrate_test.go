package profile

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMigrateInterestsGrouping(t *testing.T) {
	doc := Document{
		Interests: Interests{
			Legacy: []string{"Chess", "Docker", "Hiking"},
		},
		InterestTypes: TypeMap{
			"Docker": ClassifierWork,
			"Hiking": "hobby",
		},
	}

	normalize(&doc)

	if doc.Interests.IsLegacy() {
		t.Fatal("Expected grouped shape after migration")
	}

	if !reflect.DeepEqual([]string(doc.Interests.Groups["Work"]), []string{"Docker"}) {
		t.Errorf("Expected Work=[Docker], got %v", doc.Interests.Groups["Work"])
	}
	if !reflect.DeepEqual([]string(doc.Interests.Groups["Personal"]), []string{"Chess", "Hiking"}) {
		t.Errorf("Expected Personal=[Chess Hiking], got %v", doc.Interests.Groups["Personal"])
	}

	// The bucket type records the last classifier seen for each bucket.
	if doc.InterestTypes["Work"] != ClassifierWork {
		t.Errorf("Expected Work bucket typed work, got %s", doc.InterestTypes["Work"])
	}
	if doc.InterestTypes["Personal"] != "hobby" {
		t.Errorf("Expected Personal bucket to keep the last classifier, got %s", doc.InterestTypes["Personal"])
	}
	if _, exists := doc.InterestTypes["Docker"]; exists {
		t.Error("Expected per-item classifiers to be replaced by bucket types")
	}
}

func TestMigrateUnclassifiedDefaultsToPersonal(t *testing.T) {
	doc := Document{
		Interests: Interests{Legacy: []string{"Photography"}},
	}

	normalize(&doc)

	if !reflect.DeepEqual([]string(doc.Interests.Groups["Personal"]), []string{"Photography"}) {
		t.Errorf("Expected unclassified items under Personal, got %v", doc.Interests.Groups)
	}
}

func TestMigrateEmptyLegacy(t *testing.T) {
	doc := Document{}

	normalize(&doc)

	if doc.Interests.Groups == nil {
		t.Fatal("Expected empty grouped shape, got nil")
	}
	if len(doc.Interests.Groups) != 0 {
		t.Errorf("Expected no groups, got %v", doc.Interests.Groups)
	}
	if doc.InterestTypes == nil {
		t.Error("Expected non-nil interest types")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	doc := Document{
		Interests: Interests{Legacy: []string{"Chess", "Docker"}},
		InterestTypes: TypeMap{
			"Docker": ClassifierWork,
		},
	}

	normalize(&doc)
	first, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	normalize(&doc)
	second, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("Migration is not idempotent:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestMigrateCurrentShapePassthrough(t *testing.T) {
	doc := Document{
		Interests: Interests{
			Groups: CategoryMap{"Outdoors": {"Hiking"}},
		},
		InterestTypes: TypeMap{
			"Outdoors": "hobby",
			"Orphan":   ClassifierWork,
		},
	}

	normalize(&doc)

	if !reflect.DeepEqual([]string(doc.Interests.Groups["Outdoors"]), []string{"Hiking"}) {
		t.Errorf("Expected groups untouched, got %v", doc.Interests.Groups)
	}

	// Interest types are passed through verbatim, orphans included.
	if doc.InterestTypes["Orphan"] != ClassifierWork {
		t.Error("Expected interest types to pass through unmodified")
	}
}

func TestNormalizeSyncsSkillTypeKeys(t *testing.T) {
	doc := Document{
		Skills: CategoryMap{
			"Languages": {"Go"},
			"Cloud":     {"AWS"},
		},
		SkillTypes: TypeMap{
			"Languages": ClassifierWork,
			"Stale":     ClassifierPersonal,
		},
	}

	normalize(&doc)

	if doc.SkillTypes["Languages"] != ClassifierWork {
		t.Error("Expected existing classifier to survive")
	}
	if doc.SkillTypes["Cloud"] != ClassifierPersonal {
		t.Errorf("Expected missing classifier to default to personal, got %s", doc.SkillTypes["Cloud"])
	}
	if _, exists := doc.SkillTypes["Stale"]; exists {
		t.Error("Expected orphaned classifier to be dropped")
	}
}

func TestDecodeMalformedInterests(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "scalar", raw: `{"interests":42}`},
		{name: "string", raw: `{"interests":"not a list"}`},
		{name: "mixed array keeps strings", raw: `{"interests":["ok",7,{"x":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			err := json.Unmarshal([]byte(tt.raw), &doc)
			if err != nil {
				t.Fatalf("Expected tolerant decode, got error: %v", err)
			}

			normalize(&doc)

			if doc.Interests.Groups == nil {
				t.Error("Expected a usable grouped shape after decoding bad input")
			}
		})
	}
}

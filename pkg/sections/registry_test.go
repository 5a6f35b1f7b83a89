package sections

import (
	"reflect"
	"testing"
)

func TestNewRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	ids := []string{}
	for _, descriptor := range r.List() {
		ids = append(ids, descriptor.ID)
	}

	want := []string{"experience", "projects", "skills", "education", "languages", "interests", "custom"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected builtins in registration order %v, got %v", want, ids)
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()

	descriptor, found := r.Get("experience")
	if !found {
		t.Fatal("Expected to find experience")
	}
	if descriptor.DataEndpoint != "/api/profile" {
		t.Errorf("Expected profile data endpoint, got %s", descriptor.DataEndpoint)
	}
	if _, ok := descriptor.ConfigSchema["maxItems"]; !ok {
		t.Error("Expected maxItems in the experience config schema")
	}

	_, found = r.Get("nonexistent")
	if found {
		t.Error("Expected lookup miss for unknown id")
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Descriptor{ID: "testimonials", Label: "Testimonials"})
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	descriptors := r.List()
	if descriptors[len(descriptors)-1].ID != "testimonials" {
		t.Error("Expected new descriptor at the end of the list")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Descriptor{ID: "experience", Label: "Shadowed"})
	if err == nil {
		t.Fatal("Expected duplicate registration to fail")
	}

	descriptor, _ := r.Get("experience")
	if descriptor.Label == "Shadowed" {
		t.Error("Duplicate registration replaced the built-in descriptor")
	}
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Descriptor{Label: "Anonymous"})
	if err == nil {
		t.Fatal("Expected registration without an id to fail")
	}
}

package profile

// Category names the legacy interests migration groups items into. The
// legacy shape only ever carried the binary classifier, so two buckets
// cover everything it could express.
const (
	categoryPersonal = "Personal"
	categoryWork     = "Work"
)

// normalize brings a document to the current stored shape. It runs on every
// load and every save, so repositories and downstream consumers only ever
// see the current representation. It is a total function: any representable
// document normalizes without error, and normalizing its own output is a
// no-op.
func normalize(doc *Document) {
	if doc.Experience == nil {
		doc.Experience = []ExperienceEntry{}
	}
	if doc.Projects == nil {
		doc.Projects = []ProjectEntry{}
	}
	if doc.Education == nil {
		doc.Education = []EducationEntry{}
	}
	if doc.Languages == nil {
		doc.Languages = []LanguageEntry{}
	}
	if doc.Skills == nil {
		doc.Skills = CategoryMap{}
	}
	if doc.SkillTypes == nil {
		doc.SkillTypes = TypeMap{}
	}

	migrateInterests(doc)
	syncTypeKeys(doc.Skills, doc.SkillTypes)
}

// migrateInterests converts the legacy flat interests list plus per-item
// type map into the current category-grouped shape. Documents already in
// the current shape pass through untouched, which makes the migration
// idempotent.
func migrateInterests(doc *Document) {
	if !doc.Interests.IsLegacy() {
		if doc.InterestTypes == nil {
			doc.InterestTypes = TypeMap{}
		}
		return
	}

	groups := CategoryMap{}
	types := TypeMap{}

	for _, item := range doc.Interests.Legacy {
		classifier := doc.InterestTypes[item]
		if classifier == "" {
			classifier = ClassifierPersonal
		}

		category := categoryPersonal
		if classifier == ClassifierWork {
			category = categoryWork
		}

		groups[category] = append(groups[category], item)
		// Last write wins per category, matching the derived group map.
		types[category] = classifier
	}

	doc.Interests = Interests{Groups: groups}
	doc.InterestTypes = types
}

// syncTypeKeys keeps the key sets of a category map and its type map equal:
// categories without a classifier default to personal, classifiers without
// a category are dropped.
func syncTypeKeys(categories CategoryMap, types TypeMap) {
	for name := range categories {
		if _, ok := types[name]; !ok {
			types[name] = ClassifierPersonal
		}
	}
	for name := range types {
		if _, ok := categories[name]; !ok {
			delete(types, name)
		}
	}
}

package questions

// Provenance says where a subcategory's questions come from: a remote
// trivia API category or a local embedded collection. Each case carries
// only the fields it needs.
type Provenance interface {
	isProvenance()
}

// Remote questions are fetched from the Open Trivia DB category with the
// given numeric id.
type Remote struct {
	APICategoryID int
}

// Local questions are loaded from an embedded JSON collection.
type Local struct {
	Path string
}

func (Remote) isProvenance() {}
func (Local) isProvenance()  {}

// Subcategory is one selectable question pool inside a group.
type Subcategory struct {
	ID         string
	Name       string
	Provenance Provenance
}

// Group is a top-level category holding related subcategories.
type Group struct {
	ID            string
	Name          string
	Subcategories []Subcategory
}

// Groups is the fixed category catalog.
var Groups = []Group{
	{
		ID:   "gk",
		Name: "General Knowledge",
		Subcategories: []Subcategory{
			{ID: "gk-mixed-api", Name: "Mixed (API)", Provenance: Remote{APICategoryID: 9}},
			{ID: "gk-geography", Name: "Geography (Local)", Provenance: Local{Path: "data/questions-gk-geography.json"}},
			{ID: "gk-history", Name: "History (Local)", Provenance: Local{Path: "data/questions-gk-history.json"}},
		},
	},
	{
		ID:   "science",
		Name: "Science",
		Subcategories: []Subcategory{
			{ID: "science-mixed-api", Name: "Mixed (API)", Provenance: Remote{APICategoryID: 17}},
			{ID: "science-physics", Name: "Physics (Local)", Provenance: Local{Path: "data/questions-science-physics.json"}},
			{ID: "science-biology", Name: "Biology (Local)", Provenance: Local{Path: "data/questions-science-biology.json"}},
		},
	},
	{
		ID:   "sports",
		Name: "Sports",
		Subcategories: []Subcategory{
			{ID: "sports-mixed-api", Name: "Mixed (API)", Provenance: Remote{APICategoryID: 21}},
			{ID: "sports-football", Name: "Football (Local)", Provenance: Local{Path: "data/questions-sports-football.json"}},
			{ID: "sports-cricket", Name: "Cricket (Local)", Provenance: Local{Path: "data/questions-sports-cricket.json"}},
			{ID: "sports-basketball", Name: "Basketball (Local)", Provenance: Local{Path: "data/questions-sports-basketball.json"}},
		},
	},
}

// FindGroup looks up a group by id.
func FindGroup(id string) (Group, bool) {
	for _, g := range Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// FindSubcategory looks up a subcategory by id along with its group.
func FindSubcategory(id string) (Group, Subcategory, bool) {
	for _, g := range Groups {
		for _, sub := range g.Subcategories {
			if sub.ID == id {
				return g, sub, true
			}
		}
	}
	return Group{}, Subcategory{}, false
}

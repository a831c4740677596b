// Package catalog holds the static FE Civil exam topic tree: categories,
// their subtopics and the expected question count range for each category.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTopic is returned when a (category, subtopic) pair is not in the catalog.
var ErrUnknownTopic = errors.New("unknown topic")

// Subtopic is one entry of a category's outline.
type Subtopic struct {
	ID    string
	Title string
}

// Category is an exam knowledge area.
type Category struct {
	Key   string
	Title string

	// NumQuestions is the exam's expected question range, e.g. "8-12".
	NumQuestions string

	Subtopics []Subtopic
}

// Topic identifies a subtopic together with its category.
type Topic struct {
	CategoryKey   string
	CategoryTitle string
	SubtopicID    string
	SubtopicTitle string
}

// Key returns the topic key used to look up seeds and bank entries,
// e.g. "mathematics-A".
func (t Topic) Key() string {
	return t.CategoryKey + "-" + t.SubtopicID
}

// String returns a display label such as "Statics / Resultants of Force Systems".
func (t Topic) String() string {
	return t.CategoryTitle + " / " + t.SubtopicTitle
}

// Categories returns all categories in exam order. The returned slice is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByKey returns the category with the given key.
func CategoryByKey(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Lookup resolves a category key and subtopic ID into a Topic.
func Lookup(categoryKey, subtopicID string) (Topic, error) {
	c, ok := CategoryByKey(categoryKey)
	if !ok {
		return Topic{}, fmt.Errorf("%w: category %q", ErrUnknownTopic, categoryKey)
	}
	for _, s := range c.Subtopics {
		if s.ID == subtopicID {
			return Topic{
				CategoryKey:   c.Key,
				CategoryTitle: c.Title,
				SubtopicID:    s.ID,
				SubtopicTitle: s.Title,
			}, nil
		}
	}
	return Topic{}, fmt.Errorf("%w: %s has no subtopic %q", ErrUnknownTopic, categoryKey, subtopicID)
}

// Resolve is Lookup that also accepts a subtopic title, matched
// case-insensitively. Remote clients send the title rather than the ID.
func Resolve(categoryKey, subtopic string) (Topic, error) {
	t, err := Lookup(categoryKey, subtopic)
	if err == nil || !errors.Is(err, ErrUnknownTopic) {
		return t, err
	}
	c, ok := CategoryByKey(categoryKey)
	if !ok {
		return Topic{}, err
	}
	for _, tp := range c.Topics() {
		if strings.EqualFold(tp.SubtopicTitle, strings.TrimSpace(subtopic)) {
			return tp, nil
		}
	}
	return Topic{}, err
}

// ParseKey resolves a key of the form "<category>-<subtopic>".
func ParseKey(key string) (Topic, error) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '-' {
			return Lookup(key[:i], key[i+1:])
		}
	}
	return Topic{}, fmt.Errorf("%w: malformed key %q", ErrUnknownTopic, key)
}

// Topics returns every topic in the category, in outline order.
func (c Category) Topics() []Topic {
	out := make([]Topic, 0, len(c.Subtopics))
	for _, s := range c.Subtopics {
		out = append(out, Topic{
			CategoryKey:   c.Key,
			CategoryTitle: c.Title,
			SubtopicID:    s.ID,
			SubtopicTitle: s.Title,
		})
	}
	return out
}

func lettered(titles ...string) []Subtopic {
	out := make([]Subtopic, len(titles))
	for i, t := range titles {
		out[i] = Subtopic{ID: string(rune('A' + i)), Title: t}
	}
	return out
}

var categories = []Category{
	{
		Key: "mathematics", Title: "Mathematics & Statistics", NumQuestions: "8-12",
		Subtopics: lettered("Analytic Geometry", "Single-Variable Calculus", "Vector Operations", "Statistics"),
	},
	{
		Key: "ethics", Title: "Ethics & Professional Practice", NumQuestions: "4-6",
		Subtopics: lettered("Codes of Ethics", "Professional Liability", "Licensure", "Contracts and Contract Law"),
	},
	{
		Key: "economics", Title: "Engineering Economics", NumQuestions: "5-8",
		Subtopics: lettered("Time Value of Money", "Cost Analysis", "Break-even & Life Cycle Analysis", "Uncertainty & Risk"),
	},
	{
		Key: "statics", Title: "Statics", NumQuestions: "8-12",
		Subtopics: lettered(
			"Resultants of Force Systems",
			"Equivalent Force Systems",
			"Equilibrium of Rigid Bodies",
			"Frames and Trusses",
			"Centroid of Area",
			"Area Moments of Inertia",
			"Static Friction",
		),
	},
	{
		Key: "dynamics", Title: "Dynamics", NumQuestions: "4-6",
		Subtopics: lettered("Kinematics", "Mass Moments of Inertia", "Force Acceleration", "Work, Energy, and Power"),
	},
	{
		Key: "materials", Title: "Mechanics of Materials", NumQuestions: "7-11",
		Subtopics: lettered("Shear and Moment Diagrams", "Stresses and Strains", "Deformations", "Combined Stresses & Mohr's Circle"),
	},
	{
		Key: "materialsprop", Title: "Materials", NumQuestions: "5-8",
		Subtopics: lettered("Mix Design of Concrete and Asphalt", "Test Methods and Specifications", "Physical and Mechanical Properties"),
	},
	{
		Key: "fluid", Title: "Fluid Mechanics", NumQuestions: "6-9",
		Subtopics: lettered("Flow Measurement", "Fluid Properties", "Fluid Statics", "Energy, Impulse, and Momentum"),
	},
	{
		Key: "surveying", Title: "Surveying", NumQuestions: "6-9",
		Subtopics: lettered(
			"Angles, Distances, and Trigonometry",
			"Area Computations",
			"Earthwork and Volume Computations",
			"Coordinate Systems",
			"Leveling",
		),
	},
	{
		Key: "water", Title: "Water Resources & Environmental", NumQuestions: "10-15",
		Subtopics: lettered(
			"Basic Hydrology",
			"Basic Hydraulics",
			"Pumps",
			"Water Distribution Systems",
			"Flood Control",
			"Stormwater",
			"Collection Systems",
			"Groundwater",
			"Water Quality",
			"Testing and Standards",
			"Water and Wastewater Treatment",
		),
	},
	{
		Key: "structural", Title: "Structural Engineering", NumQuestions: "10-15",
		Subtopics: lettered(
			"Analysis of Statically Determinant Structures",
			"Deflection Methods",
			"Column Analysis",
			"Structural Determinacy",
			"Indeterminate Structures",
			"Loads and Load Paths",
			"Design of Steel Components",
			"Design of Reinforced Concrete",
		),
	},
	{
		Key: "geotechnical", Title: "Geotechnical Engineering", NumQuestions: "10-15",
		Subtopics: lettered(
			"Index Properties and Soil Classifications",
			"Phase Relations",
			"Laboratory and Field Tests",
			"Effective Stress",
			"Stability of Retaining Structures",
			"Shear Strength",
			"Bearing Capacity",
			"Foundation Types",
			"Consolidation and Settlement",
			"Slope Stability",
			"Soil Stabilization",
		),
	},
	{
		Key: "transportation", Title: "Transportation Engineering", NumQuestions: "9-14",
		Subtopics: lettered(
			"Geometric Design",
			"Pavement System Design",
			"Traffic Capacity and Flow",
			"Traffic Control Devices",
			"Transportation Planning",
		),
	},
	{
		Key: "construction", Title: "Construction Engineering", NumQuestions: "8-12",
		Subtopics: lettered(
			"Project Administration",
			"Construction Operations",
			"Project Controls",
			"Construction Estimating",
			"Interpretation of Engineering Drawings",
		),
	},
}

package entities

import "errors"

var ErrUnknownCategory = errors.New("unknown category")

// Category identifies a quiz topic with its own question sequence and score counter.
type Category string

const (
	CategoryHTML  Category = "html"
	CategoryCSS   Category = "css"
	CategoryJS    Category = "js"
	CategoryReact Category = "react"
	CategoryGo    Category = "go"
)

// categories is the closed set of topics in menu order.
var categories = []Category{
	CategoryHTML,
	CategoryCSS,
	CategoryJS,
	CategoryReact,
	CategoryGo,
}

var categoryLabels = map[Category]string{
	CategoryHTML:  "HTML",
	CategoryCSS:   "CSS",
	CategoryJS:    "JavaScript",
	CategoryReact: "React",
	CategoryGo:    "GO",
}

// Categories returns all known categories in menu order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory validates a raw category identifier.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// CategoryByLabel resolves a menu button label (e.g. "JavaScript") to its category.
func CategoryByLabel(label string) (Category, bool) {
	for c, l := range categoryLabels {
		if l == label {
			return c, true
		}
	}
	return "", false
}

// Label returns the human-readable name shown on keyboards.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

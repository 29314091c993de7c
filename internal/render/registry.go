package render

import (
	"fmt"
	"strings"

	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
)

// Section is a named insertion point of a template and the number of layout
// variants it ships with. Variant ids are "1".."N".
type Section struct {
	Name     string
	Variants int
}

// Descriptor describes one template in the static catalog.
type Descriptor struct {
	Name        string
	Label       string
	SuitableFor []string
	Sections    []Section
}

func (d Descriptor) section(name string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

var registry = []Descriptor{
	{
		Name:        "essentials",
		Label:       "Essentials",
		SuitableFor: []string{"sari-sari store", "carinderia", "repair shop", "laundry", "general"},
		Sections: []Section{
			{Name: "navbar", Variants: 1},
			{Name: "hero", Variants: 3},
			{Name: "about", Variants: 2},
			{Name: "services", Variants: 2},
			{Name: "contact", Variants: 1},
			{Name: "footer", Variants: 1},
		},
	},
	{
		Name:        "storefront",
		Label:       "Storefront",
		SuitableFor: []string{"retail", "bakery", "grocery", "pharmacy", "hardware"},
		Sections: []Section{
			{Name: "navbar", Variants: 1},
			{Name: "hero", Variants: 3},
			{Name: "about", Variants: 2},
			{Name: "services", Variants: 2},
			{Name: "featured", Variants: 2},
			{Name: "gallery", Variants: 1},
			{Name: "contact", Variants: 1},
			{Name: "footer", Variants: 1},
		},
	},
	{
		Name:        "artisan",
		Label:       "Artisan",
		SuitableFor: []string{"barbershop", "salon", "tailor", "crafts", "photography", "restaurant"},
		Sections: []Section{
			{Name: "navbar", Variants: 1},
			{Name: "hero", Variants: 3},
			{Name: "about", Variants: 2},
			{Name: "featured", Variants: 2},
			{Name: "gallery", Variants: 1},
			{Name: "contact", Variants: 1},
			{Name: "footer", Variants: 1},
		},
	},
}

const defaultTemplate = "essentials"

// Get resolves a template by name. An unknown name is a configuration error,
// not something to paper over with a substitute.
func Get(name string) (Descriptor, error) {
	for _, d := range registry {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, errs.ValidationError{Err: fmt.Errorf("unknown template %q", name)}
}

// ByBusinessType picks the template whose suitability tags match the business
// type classifier, falling back to the general-purpose template.
func ByBusinessType(businessType string) Descriptor {
	needle := strings.ToLower(strings.TrimSpace(businessType))
	for _, d := range registry {
		for _, tag := range d.SuitableFor {
			if tag == needle {
				return d
			}
		}
	}
	d, _ := Get(defaultTemplate)
	return d
}

// All returns the catalog in registration order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

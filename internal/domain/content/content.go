package content

import (
	"encoding/json"
	"fmt"
)

// BusinessContent is the structure the extraction service returns for an
// interview transcript.
type BusinessContent struct {
	Tagline    string    `json:"tagline"`
	About      string    `json:"about"`
	Services   []Service `json:"services"`
	Contact    Contact   `json:"contact"`
	Highlights []string  `json:"highlights"`
}

type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type FeaturedItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Testimonial string   `json:"testimonial,omitempty"`
}

type NavLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type SectionText struct {
	Headline    string `json:"headline,omitempty"`
	Subheadline string `json:"subheadline,omitempty"`
	Body        string `json:"body,omitempty"`
}

// WebsiteContent is the normalized, independently editable content model that
// feeds the injection engine. Every field is optional; the engine renders
// empty sections rather than failing on gaps.
type WebsiteContent struct {
	BusinessName  string                 `json:"businessName"`
	Tagline       string                 `json:"tagline,omitempty"`
	About         string                 `json:"about,omitempty"`
	Sections      map[string]SectionText `json:"sections,omitempty"`
	Services      []Service              `json:"services,omitempty"`
	Featured      []FeaturedItem         `json:"featured,omitempty"`
	Contact       Contact                `json:"contact"`
	Navigation    []NavLink              `json:"navigation,omitempty"`
	SectionImages map[string][]string    `json:"sectionImages,omitempty"`
	Visibility    map[string]bool        `json:"visibility,omitempty"`
}

// Visible reports whether a content region should be rendered. Regions default
// to visible; only an explicit false hides one, so editors can hide a section
// without losing its data.
func (w *WebsiteContent) Visible(section string) bool {
	if w.Visibility == nil {
		return true
	}
	if v, ok := w.Visibility[section]; ok {
		return v
	}
	return true
}

// Source is the tagged union the injection boundary accepts: either a legacy
// unstructured blob stored directly on the website record, or the normalized
// model. Exactly one side should be set.
type Source struct {
	Legacy     json.RawMessage
	Normalized *WebsiteContent
}

// Normalize converts either representation to the normalized shape, so the
// engine only ever sees one. Legacy blobs are decoded best-effort: unknown
// keys are dropped, missing keys stay zero.
func (s Source) Normalize() (*WebsiteContent, error) {
	if s.Normalized != nil {
		return s.Normalized, nil
	}
	if len(s.Legacy) == 0 {
		return &WebsiteContent{}, nil
	}

	var legacy struct {
		BusinessName string    `json:"businessName"`
		Name         string    `json:"name"`
		Tagline      string    `json:"tagline"`
		About        string    `json:"about"`
		Description  string    `json:"description"`
		Services     []Service `json:"services"`
		Contact      Contact   `json:"contact"`
		Phone        string    `json:"phone"`
		Email        string    `json:"email"`
		Address      string    `json:"address"`
		Highlights   []string  `json:"highlights"`
		Photos       []string  `json:"photos"`
	}
	if err := json.Unmarshal(s.Legacy, &legacy); err != nil {
		return nil, fmt.Errorf("can't decode legacy content blob, %v", err)
	}

	normalized := &WebsiteContent{
		BusinessName: legacy.BusinessName,
		Tagline:      legacy.Tagline,
		About:        legacy.About,
		Services:     legacy.Services,
		Contact:      legacy.Contact,
	}
	if normalized.BusinessName == "" {
		normalized.BusinessName = legacy.Name
	}
	if normalized.About == "" {
		normalized.About = legacy.Description
	}
	if normalized.Contact.Phone == "" {
		normalized.Contact.Phone = legacy.Phone
	}
	if normalized.Contact.Email == "" {
		normalized.Contact.Email = legacy.Email
	}
	if normalized.Contact.Address == "" {
		normalized.Contact.Address = legacy.Address
	}
	for _, h := range legacy.Highlights {
		normalized.Featured = append(normalized.Featured, FeaturedItem{Title: h})
	}
	if len(legacy.Photos) > 0 {
		normalized.SectionImages = map[string][]string{"gallery": legacy.Photos}
	}
	return normalized, nil
}

// FromBusiness seeds the editable model from freshly extracted content.
func FromBusiness(businessName string, bc BusinessContent) *WebsiteContent {
	w := &WebsiteContent{
		BusinessName: businessName,
		Tagline:      bc.Tagline,
		About:        bc.About,
		Services:     bc.Services,
		Contact:      bc.Contact,
	}
	for _, h := range bc.Highlights {
		w.Featured = append(w.Featured, FeaturedItem{Title: h})
	}
	return w
}

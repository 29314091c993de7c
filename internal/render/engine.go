package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates *template.Template

func init() {
	// "section" dispatches to a variant template by computed name, which
	// text/template cannot do natively.
	funcs := template.FuncMap{
		"section": func(name string, data any) (template.HTML, error) {
			var buf bytes.Buffer
			if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}
	pageTemplates = template.Must(
		template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"),
	)
}

// SectionRef names one section instance to render, in document order.
type SectionRef struct {
	Name    string
	Variant string
}

func (s SectionRef) TemplateName() string {
	return s.Name + "_" + s.Variant
}

type FeaturedView struct {
	Title       string
	Description string
	Image       string
	Tags        []string
	Testimonial string
}

// Page is the fully merged view model handed to the templates. Everything the
// templates touch is resolved here so rendering stays deterministic.
type Page struct {
	Template     string
	BusinessName string
	Tagline      string
	About        string
	Colors       ColorScheme
	Fonts        FontPairing
	Services     []content.Service
	Featured     []FeaturedView
	Contact      content.Contact
	Nav          []content.NavLink
	Sections     []SectionRef
	HeroImage    string
	AboutImage   string
	Gallery      []string

	texts map[string]content.SectionText
}

// Text returns the per-section headline/subheadline/body overrides, zero when
// none were edited.
func (p *Page) Text(section string) content.SectionText {
	return p.texts[section]
}

// Render merges content, a customization selection and the photo list into the
// chosen template and returns the final HTML document. It is a pure function:
// identical inputs always yield byte-identical output. Unknown template names
// and unknown variant ids fail fast; missing content degrades to empty
// sections.
func Render(templateName string, src content.Source, customizations map[string]string, photos []string) (string, error) {
	desc, err := Get(templateName)
	if err != nil {
		return "", err
	}
	wc, err := src.Normalize()
	if err != nil {
		return "", errs.ValidationError{Err: err}
	}

	merged := DefaultCustomizations()
	for k, v := range customizations {
		if _, known := merged[k]; known && v != "" {
			merged[k] = v
		}
	}

	var refs []SectionRef
	for _, s := range desc.Sections {
		variant := merged[s.Name+"Style"]
		n, convErr := strconv.Atoi(variant)
		if convErr != nil || n < 1 || n > s.Variants {
			return "", errs.ValidationError{
				Err: fmt.Errorf("template %s has no variant %q for section %s", desc.Name, variant, s.Name),
			}
		}
		if !wc.Visible(s.Name) {
			continue
		}
		refs = append(refs, SectionRef{Name: s.Name, Variant: variant})
	}

	page := buildPage(desc, wc, merged, photos)
	page.Sections = refs

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, desc.Name, page); err != nil {
		return "", fmt.Errorf("render %s: %v", desc.Name, err)
	}
	return buf.String(), nil
}

func buildPage(desc Descriptor, wc *content.WebsiteContent, merged map[string]string, photos []string) *Page {
	page := &Page{
		Template:     desc.Name,
		BusinessName: wc.BusinessName,
		Tagline:      wc.Tagline,
		About:        wc.About,
		Colors:       resolveScheme(merged["colorScheme"], photos),
		Fonts:        resolveFonts(merged["fontPairing"]),
		Services:     wc.Services,
		Contact:      wc.Contact,
		texts:        wc.Sections,
	}
	if page.BusinessName == "" {
		page.BusinessName = "Our Business"
	}

	page.HeroImage = pickImage(wc, photos, "hero", 0)
	page.AboutImage = pickImage(wc, photos, "about", 1)
	page.Gallery = galleryImages(wc, photos)

	for i, item := range wc.Featured {
		view := FeaturedView{
			Title:       item.Title,
			Description: item.Description,
			Image:       item.Image,
			Tags:        item.Tags,
			Testimonial: item.Testimonial,
		}
		if view.Image == "" && len(photos) > 0 {
			view.Image = photos[i%len(photos)]
		}
		page.Featured = append(page.Featured, view)
	}

	page.Nav = wc.Navigation
	if len(page.Nav) == 0 {
		for _, s := range desc.Sections {
			switch s.Name {
			case "navbar", "footer":
				continue
			}
			if !wc.Visible(s.Name) {
				continue
			}
			page.Nav = append(page.Nav, content.NavLink{
				Label: strings.ToUpper(s.Name[:1]) + s.Name[1:],
				Href:  "#" + s.Name,
			})
		}
	}
	return page
}

// pickImage prefers an explicit per-section image, then falls back to the
// shared photo list. A shortfall reuses the first photo instead of leaving a
// broken slot.
func pickImage(wc *content.WebsiteContent, photos []string, section string, idx int) string {
	if imgs := wc.SectionImages[section]; len(imgs) > 0 {
		return imgs[0]
	}
	if len(photos) > idx {
		return photos[idx]
	}
	if len(photos) > 0 {
		return photos[0]
	}
	return ""
}

func galleryImages(wc *content.WebsiteContent, photos []string) []string {
	if imgs := wc.SectionImages["gallery"]; len(imgs) > 0 {
		return imgs
	}
	if len(photos) > 2 {
		return photos[2:]
	}
	return photos
}

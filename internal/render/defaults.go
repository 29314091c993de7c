package render

import (
	"hash/fnv"
	"html/template"
	"strings"
)

type ColorScheme struct {
	Name       string
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Surface    string
	Text       string
}

type FontPairing struct {
	Name    string
	Heading string
	Body    string
	Import  string
}

// HeadingCSS marks the font stack as safe CSS; the pairings are a fixed table,
// never user input.
func (f FontPairing) HeadingCSS() template.CSS {
	return template.CSS(f.Heading)
}

func (f FontPairing) BodyCSS() template.CSS {
	return template.CSS(f.Body)
}

// DefaultCustomizations is the fallback table for unset or unknown
// customization keys.
func DefaultCustomizations() map[string]string {
	return map[string]string{
		"navbarStyle":   "1",
		"heroStyle":     "1",
		"aboutStyle":    "1",
		"servicesStyle": "1",
		"featuredStyle": "1",
		"galleryStyle":  "1",
		"contactStyle":  "1",
		"footerStyle":   "1",
		"colorScheme":   "auto",
		"fontPairing":   "modern",
	}
}

// Scheme order matters: "auto" indexes into this list deterministically.
var colorSchemes = []ColorScheme{
	{Name: "professional", Primary: "#1d4ed8", Secondary: "#1e3a5f", Accent: "#f59e0b", Background: "#f8fafc", Surface: "#ffffff", Text: "#0f172a"},
	{Name: "warm", Primary: "#b45309", Secondary: "#7c2d12", Accent: "#fbbf24", Background: "#fffbeb", Surface: "#ffffff", Text: "#292524"},
	{Name: "fresh", Primary: "#047857", Secondary: "#064e3b", Accent: "#fb923c", Background: "#f0fdf4", Surface: "#ffffff", Text: "#14532d"},
	{Name: "bold", Primary: "#7c3aed", Secondary: "#4c1d95", Accent: "#f43f5e", Background: "#faf5ff", Surface: "#ffffff", Text: "#1e1b4b"},
	{Name: "sunset", Primary: "#db2777", Secondary: "#9d174d", Accent: "#fb923c", Background: "#fdf2f8", Surface: "#ffffff", Text: "#500724"},
}

var fontPairings = map[string]FontPairing{
	"modern": {
		Name:    "modern",
		Heading: "'Poppins', sans-serif",
		Body:    "'Inter', sans-serif",
		Import:  "https://fonts.googleapis.com/css2?family=Poppins:wght@500;700&family=Inter:wght@400;600&display=swap",
	},
	"classic": {
		Name:    "classic",
		Heading: "'Playfair Display', serif",
		Body:    "'Source Sans 3', sans-serif",
		Import:  "https://fonts.googleapis.com/css2?family=Playfair+Display:wght@500;700&family=Source+Sans+3:wght@400;600&display=swap",
	},
	"friendly": {
		Name:    "friendly",
		Heading: "'Nunito', sans-serif",
		Body:    "'Open Sans', sans-serif",
		Import:  "https://fonts.googleapis.com/css2?family=Nunito:wght@600;800&family=Open+Sans:wght@400;600&display=swap",
	},
}

// resolveScheme maps a colorScheme id to concrete colors. "auto" derives a
// palette from the photo set: true pixel sampling would need remote fetches,
// which a pure renderer can't do, so the photo URL list is hashed into the
// fixed palette table instead. No photos means the professional palette.
func resolveScheme(id string, photos []string) ColorScheme {
	if id == "auto" {
		if len(photos) == 0 {
			return colorSchemes[0]
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.Join(photos, "\n")))
		return colorSchemes[int(h.Sum32())%len(colorSchemes)]
	}
	for _, s := range colorSchemes {
		if s.Name == id {
			return s
		}
	}
	return colorSchemes[0]
}

func resolveFonts(id string) FontPairing {
	if fp, ok := fontPairings[id]; ok {
		return fp
	}
	return fontPairings["modern"]
}

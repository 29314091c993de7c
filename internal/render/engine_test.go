package render

import (
	"strings"
	"testing"

	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullContent() content.Source {
	return content.Source{Normalized: &content.WebsiteContent{
		BusinessName: "Aling Nena's Carinderia",
		Tagline:      "Lutong bahay, araw-araw",
		About:        "Serving the barangay since 1998.",
		Services: []content.Service{
			{Name: "Silog meals", Description: "All-day breakfast"},
			{Name: "Catering", Description: "Fiestas and birthdays"},
		},
		Contact: content.Contact{Phone: "0917 123 4567", Email: "nena@example.com", Address: "123 Rizal St"},
	}}
}

var testPhotos = []string{
	"https://cdn.example.com/a.jpg",
	"https://cdn.example.com/b.jpg",
	"https://cdn.example.com/c.jpg",
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render("essentials", fullContent(), nil, testPhotos)
	require.NoError(t, err)
	second, err := Render("essentials", fullContent(), nil, testPhotos)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Aling Nena&#39;s Carinderia")
	assert.Contains(t, first, "Silog meals")
	assert.Contains(t, first, "0917 123 4567")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("brutalist", fullContent(), nil, nil)
	require.Error(t, err)
	assert.IsType(t, errs.ValidationError{}, err)
}

func TestRenderUnknownVariant(t *testing.T) {
	_, err := Render("essentials", fullContent(), map[string]string{"heroStyle": "9"}, testPhotos)
	require.Error(t, err)
	assert.IsType(t, errs.ValidationError{}, err)

	_, err = Render("essentials", fullContent(), map[string]string{"heroStyle": "abc"}, testPhotos)
	require.Error(t, err)
	assert.IsType(t, errs.ValidationError{}, err)
}

func TestRenderUnknownCustomizationKeyIgnored(t *testing.T) {
	base, err := Render("essentials", fullContent(), nil, testPhotos)
	require.NoError(t, err)
	withJunk, err := Render("essentials", fullContent(), map[string]string{"sparkleMode": "11"}, testPhotos)
	require.NoError(t, err)
	assert.Equal(t, base, withJunk)
}

func TestRenderEmptyContent(t *testing.T) {
	html, err := Render("essentials", content.Source{}, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Our Business")
}

func TestRenderHiddenSectionOmitted(t *testing.T) {
	src := fullContent()
	src.Normalized.Visibility = map[string]bool{"services": false}

	html, err := Render("essentials", src, nil, testPhotos)
	require.NoError(t, err)
	assert.NotContains(t, html, "Silog meals")
	assert.NotContains(t, html, "#services")
}

func TestRenderPhotoShortfallReusesFirst(t *testing.T) {
	one := []string{"https://cdn.example.com/only.jpg"}
	html, err := Render("essentials", fullContent(), nil, one)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strings.Count(html, "only.jpg"), 2)
}

func TestRenderVariantsDiffer(t *testing.T) {
	v1, err := Render("essentials", fullContent(), map[string]string{"heroStyle": "1"}, testPhotos)
	require.NoError(t, err)
	v2, err := Render("essentials", fullContent(), map[string]string{"heroStyle": "2"}, testPhotos)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
}

func TestRenderGalleryTemplate(t *testing.T) {
	html, err := Render("storefront", fullContent(), nil, testPhotos)
	require.NoError(t, err)
	// photos beyond hero and about feed the gallery
	assert.Contains(t, html, "c.jpg")
}

func TestAutoPaletteIsStablePerPhotoSet(t *testing.T) {
	a := resolveScheme("auto", testPhotos)
	b := resolveScheme("auto", testPhotos)
	assert.Equal(t, a, b)

	noPhotos := resolveScheme("auto", nil)
	assert.Equal(t, "professional", noPhotos.Name)
}

func TestByBusinessType(t *testing.T) {
	assert.Equal(t, "artisan", ByBusinessType("Barbershop").Name)
	assert.Equal(t, "storefront", ByBusinessType("bakery").Name)
	assert.Equal(t, "essentials", ByBusinessType("fish pond").Name)
}

package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLegacyAliases(t *testing.T) {
	legacy := json.RawMessage(`{
		"name": "Mang Tomas Vulcanizing",
		"description": "Gulong repairs since 2005",
		"phone": "0917 000 1111",
		"email": "tomas@example.com",
		"address": "MacArthur Hwy",
		"highlights": ["Open 24/7", "Home service"],
		"photos": ["p1.jpg", "p2.jpg"]
	}`)

	wc, err := Source{Legacy: legacy}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "Mang Tomas Vulcanizing", wc.BusinessName)
	assert.Equal(t, "Gulong repairs since 2005", wc.About)
	assert.Equal(t, "0917 000 1111", wc.Contact.Phone)
	assert.Equal(t, "tomas@example.com", wc.Contact.Email)
	assert.Equal(t, "MacArthur Hwy", wc.Contact.Address)
	require.Len(t, wc.Featured, 2)
	assert.Equal(t, "Open 24/7", wc.Featured[0].Title)
	assert.Equal(t, []string{"p1.jpg", "p2.jpg"}, wc.SectionImages["gallery"])
}

func TestNormalizeCanonicalKeysWin(t *testing.T) {
	legacy := json.RawMessage(`{"businessName": "Canonical", "name": "Alias", "about": "a", "description": "b"}`)
	wc, err := Source{Legacy: legacy}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Canonical", wc.BusinessName)
	assert.Equal(t, "a", wc.About)
}

func TestNormalizeEmptyAndInvalid(t *testing.T) {
	wc, err := Source{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, &WebsiteContent{}, wc)

	_, err = Source{Legacy: json.RawMessage(`{not json`)}.Normalize()
	assert.Error(t, err)
}

func TestNormalizePrefersNormalized(t *testing.T) {
	model := &WebsiteContent{BusinessName: "Already Normalized"}
	wc, err := Source{Legacy: json.RawMessage(`{"name":"ignored"}`), Normalized: model}.Normalize()
	require.NoError(t, err)
	assert.Same(t, model, wc)
}

func TestVisibilityDefaultsToVisible(t *testing.T) {
	wc := &WebsiteContent{}
	assert.True(t, wc.Visible("hero"))

	wc.Visibility = map[string]bool{"services": false}
	assert.False(t, wc.Visible("services"))
	assert.True(t, wc.Visible("hero"))
}

func TestFromBusiness(t *testing.T) {
	bc := BusinessContent{
		Tagline:    "Fresh pandesal daily",
		About:      "Family bakery",
		Services:   []Service{{Name: "Pandesal"}},
		Contact:    Contact{Phone: "123"},
		Highlights: []string{"Best seller: cheese bread"},
	}
	wc := FromBusiness("Panaderia Cruz", bc)
	assert.Equal(t, "Panaderia Cruz", wc.BusinessName)
	assert.Equal(t, "Fresh pandesal daily", wc.Tagline)
	require.Len(t, wc.Featured, 1)
	assert.Equal(t, "Best seller: cheese bread", wc.Featured[0].Title)
}

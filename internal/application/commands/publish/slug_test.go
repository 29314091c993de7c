package publish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Aling Nena Carinderia", "aling-nena-carinderia"},
		{"punctuation", "Juan's Barbershop #1!", "juan-s-barbershop-1"},
		{"filipino chars", "Tindahan ni Aling María", "tindahan-ni-aling-mar-a"},
		{"leading trailing", "  --Sari-Sari--  ", "sari-sari"},
		{"empty", "", "business"},
		{"only symbols", "!!!", "business"},
		{"collapses runs", "a   &   b", "a-b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyLength(t *testing.T) {
	long := strings.Repeat("barangay-", 20)
	got := Slugify(long)
	assert.LessOrEqual(t, len(got), 63)
	assert.False(t, strings.HasSuffix(got, "-"))
}

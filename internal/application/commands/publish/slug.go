package publish

import "strings"

const maxSlugLen = 63

// Slugify derives a DNS-label-safe site name from a business name. Runs of
// anything outside [a-z0-9] collapse into a single hyphen; the result is
// trimmed to the DNS label limit and never empty.
func Slugify(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "business"
	}
	return slug
}

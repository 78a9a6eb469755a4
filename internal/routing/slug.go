// internal/routing/slug.go
//
// Slug, page path, and site domain helpers.
//
//   - MakeSlug(title) converts arbitrary text into a URL-safe slug restricted
//     to ASCII a-z, 0-9, and "-".
//   - NormalizePageSlug(s) maps every spelling of a page path to its stored
//     form: exactly one leading slash, no trailing slash, "/" for home.
//   - SiteDomain(title, owner, suffix) builds a site's default host name.
//
// Rules (MakeSlug)
// ----------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one "-".  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Trim leading and trailing "-".
// 4. If the result is empty, return "site".
//
// Notes
// -----
//   - No Unicode transliteration; site names are English-only for now.
//   - Slugs are max 100 bytes.
package routing

import (
	"strings"
)

// MaxSlug bounds MakeSlug output.
const MaxSlug = 100

// MakeSlug converts title to lower-kebab ASCII.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "site"
	}
	if len(slug) > MaxSlug {
		slug = strings.TrimRight(slug[:MaxSlug], "-")
	}
	return slug
}

// NormalizePageSlug returns the stored form of a page path.
func NormalizePageSlug(s string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// SiteDomain returns "<slug>-<owner8>.<suffix>", where owner8 is the first
// eight slug-safe characters of the owner id.
func SiteDomain(title, ownerID, suffix string) string {
	owner := MakeSlug(ownerID)
	owner = strings.ReplaceAll(owner, "-", "")
	if len(owner) > 8 {
		owner = owner[:8]
	}
	host := MakeSlug(title)
	if owner != "" {
		host += "-" + owner
	}
	return host + "." + strings.Trim(suffix, ".")
}

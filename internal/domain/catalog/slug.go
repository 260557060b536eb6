package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	bracketedLetter   = regexp.MustCompile(`\[([A-Z])\]`)
	nonWordPattern    = regexp.MustCompile(`[^\w]`)
	underscoreRuns    = regexp.MustCompile(`_+`)
)

// GenerateSlug converts an item name into a URL-friendly slug.
//
//	"Iron Plate"       -> "Iron_Plate"
//	"Battery [B] Pack" -> "Battery_B_Pack"
//	"Crème Brûlée"     -> "Creme_Brulee"
func GenerateSlug(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}

	slug := whitespacePattern.ReplaceAllString(folded, "_")
	slug = bracketedLetter.ReplaceAllString(slug, "_${1}_")
	slug = nonWordPattern.ReplaceAllString(slug, "")
	slug = underscoreRuns.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

// AssignSlugs fills empty Slug fields, disambiguating collisions with a numeric
// suffix. Existing slugs are kept and reserved first.
func AssignSlugs(items []Item) {
	owners := make(map[string]string, len(items))
	for _, item := range items {
		if item.Slug != "" {
			owners[item.Slug] = item.ID
		}
	}

	for i := range items {
		if items[i].Slug != "" {
			continue
		}
		base := GenerateSlug(items[i].Name)
		if base == "" {
			base = GenerateSlug(items[i].ID)
		}
		slug := disambiguateSlug(base, owners, items[i].ID)
		owners[slug] = items[i].ID
		items[i].Slug = slug
	}
}

func disambiguateSlug(base string, owners map[string]string, itemID string) string {
	owner, taken := owners[base]
	if !taken || owner == itemID {
		return base
	}

	counter := 2
	for {
		candidate := base + "_" + strconv.Itoa(counter)
		if _, exists := owners[candidate]; !exists {
			return candidate
		}
		counter++
	}
}

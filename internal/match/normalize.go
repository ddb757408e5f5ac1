// Package match implements the garment suggestion pipeline:
// normalize -> filter -> score -> paginate -> assemble.
// Everything here is pure; collaborator reads happen in internal/services.
package match

import (
	"strings"

	"stylematch/internal/domain"
)

// Context is the consumer side of a match, already normalized.
type Context struct {
	SkinTone string
	Gender   string
	// Occasion is a canonical occasion label and takes part in scoring.
	Occasion string
	// OccasionTag holds an unknown occasion verbatim. It can only be used
	// as an exact-match filter.
	OccasionTag string
}

// Empty reports whether no scoring attribute is set.
func (c Context) Empty() bool {
	return c.SkinTone == "" && c.Gender == "" && c.Occasion == ""
}

func clean(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Normalize canonicalizes raw consumer attributes. Unknown skin tones and
// genders become unspecified; unknown occasions are kept as a raw tag.
func Normalize(rawSkinTone, rawGender, rawOccasion string) Context {
	var c Context
	if t := clean(rawSkinTone); domain.IsSkinTone(t) {
		c.SkinTone = t
	}
	if g, ok := domain.CanonicalGender(clean(rawGender)); ok {
		c.Gender = g
	}
	switch o := clean(rawOccasion); {
	case o == "":
	case domain.IsOccasion(o):
		c.Occasion = o
	default:
		c.OccasionTag = o
	}
	return c
}

var dressCodes = map[string]string{
	"black tie":       "formal",
	"white tie":       "formal",
	"formal":          "formal",
	"business":        "business",
	"business casual": "business",
	"smart casual":    "business",
	"cocktail":        "party",
	"beach":           "beach",
	"resort":          "beach",
	"casual":          "casual",
	"athletic":        "sports",
}

// ContextFromOccasion layers a saved occasion over base. The occasion type
// wins; a dress code fills in when the type is empty or "other". A valid
// skin tone on the occasion overrides the one from the request.
func ContextFromOccasion(o domain.Occasion, base Context) Context {
	c := base
	typ := clean(o.Type)
	if typ == "" || typ == "other" {
		if mapped, ok := dressCodes[clean(o.DressCode)]; ok {
			typ = mapped
		}
	}
	over := Normalize(o.SkinTone, "", typ)
	if over.Occasion != "" || over.OccasionTag != "" {
		c.Occasion, c.OccasionTag = over.Occasion, over.OccasionTag
	}
	if over.SkinTone != "" {
		c.SkinTone = over.SkinTone
	}
	return c
}

// NormalizeSkinTones lower-cases, de-duplicates and drops unknown tones.
// An empty result means "suitable for all".
func NormalizeSkinTones(tones []string) []string {
	out := make([]string, 0, len(tones))
	seen := make(map[string]struct{}, len(tones))
	for _, t := range tones {
		t = clean(t)
		if !domain.IsSkinTone(t) {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeOccasionTags lower-cases and de-duplicates occasion tags. Unknown
// tags are kept so raw-tag filtering can still match them.
func NormalizeOccasionTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = clean(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NormalizeGarment returns g with its attribute sets in the shared vocabulary.
func NormalizeGarment(g domain.Garment) domain.Garment {
	g.Category = clean(g.Category)
	if c, ok := domain.CanonicalColor(clean(g.Color)); ok {
		g.Color = c
	} else {
		g.Color = clean(g.Color)
	}
	g.SuitableSkinTones = NormalizeSkinTones(g.SuitableSkinTones)
	g.OccasionTags = NormalizeOccasionTags(g.OccasionTags)
	if gen, ok := domain.CanonicalGender(clean(g.Gender)); ok && gen != domain.GenderUnisex {
		g.Gender = gen
	} else {
		g.Gender = ""
	}
	return g
}

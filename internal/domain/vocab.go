package domain

// Fixed vocabularies shared by garment tagging and consumer attributes.
var (
	SkinTones = []string{"fair", "light", "medium", "tan", "deep", "dark"}

	Occasions = []string{"casual", "formal", "business", "party", "wedding", "sports", "beach", "other"}

	Genders = []string{"male", "female", "unisex"}

	Categories = []string{
		"dress", "shirt", "blouse", "t-shirt", "top", "pants", "jeans", "skirt", "shorts",
		"jacket", "coat", "suit", "sweater", "activewear", "swimwear", "shoes", "accessories", "other",
	}

	Colors = []string{
		"black", "white", "grey", "red", "blue", "navy", "green", "yellow", "orange",
		"pink", "purple", "brown", "beige", "gold", "silver", "multi",
	}
)

const GenderUnisex = "unisex"

var genderSynonyms = map[string]string{
	"male": "male", "men": "male", "man": "male", "mens": "male", "m": "male",
	"female": "female", "women": "female", "woman": "female", "womens": "female", "f": "female", "w": "female",
	"unisex": GenderUnisex,
}

var colorSynonyms = map[string]string{"gray": "grey"}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func IsSkinTone(v string) bool { return contains(SkinTones, v) }
func IsOccasion(v string) bool { return contains(Occasions, v) }
func IsCategory(v string) bool { return contains(Categories, v) }

// CanonicalGender maps a lower-cased gender word to male/female/unisex.
func CanonicalGender(v string) (string, bool) {
	g, ok := genderSynonyms[v]
	return g, ok
}

// CanonicalColor maps a lower-cased colour name onto the palette.
func CanonicalColor(v string) (string, bool) {
	if c, ok := colorSynonyms[v]; ok {
		v = c
	}
	return v, contains(Colors, v)
}

// ColorSpellings lists every stored spelling that canonicalizes to c,
// starting with c itself.
func ColorSpellings(c string) []string {
	out := []string{c}
	for alias, canon := range colorSynonyms {
		if canon == c {
			out = append(out, alias)
		}
	}
	return out
}

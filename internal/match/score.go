package match

import (
	"sort"
	"strings"

	"stylematch/internal/domain"
)

const (
	skinToneWeight = 3
	occasionWeight = 2
	genderWeight   = 1

	reasonSep      = " • "
	fallbackReason = "Popular pick"
)

// Ranked is a candidate that survived scoring.
type Ranked struct {
	Garment domain.Garment
	Score   int
	Reason  string
	// Specific counts attributes matched through an explicit tag rather
	// than an empty (open) set. It breaks score ties before recency.
	Specific int
}

// Score ranks candidates against ctx. Candidates with an explicit skin tone
// or occasion list that excludes the consumer's value are dropped, not
// ranked low. Order is score desc, specificity desc, createdAt desc, id asc.
func Score(candidates []domain.Garment, ctx Context) []Ranked {
	out := make([]Ranked, 0, len(candidates))
	for _, g := range candidates {
		r, ok := scoreOne(g, ctx)
		if ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Specific != b.Specific {
			return a.Specific > b.Specific
		}
		if !a.Garment.CreatedAt.Equal(b.Garment.CreatedAt) {
			return a.Garment.CreatedAt.After(b.Garment.CreatedAt)
		}
		return a.Garment.ID < b.Garment.ID
	})
	return out
}

func scoreOne(g domain.Garment, ctx Context) (Ranked, bool) {
	var (
		score, specific int
		fragments       []string
	)

	if ctx.SkinTone != "" {
		switch {
		case len(g.SuitableSkinTones) == 0:
			score += skinToneWeight
			fragments = append(fragments, "Universally flattering")
		case has(g.SuitableSkinTones, ctx.SkinTone):
			score += skinToneWeight
			specific++
			fragments = append(fragments, "Suits your "+ctx.SkinTone+" skin tone")
		default:
			return Ranked{}, false
		}
	}

	if ctx.Occasion != "" {
		if len(g.OccasionTags) > 0 {
			if !has(g.OccasionTags, ctx.Occasion) {
				return Ranked{}, false
			}
			specific++
		}
		score += occasionWeight
		fragments = append(fragments, "Great for "+ctx.Occasion+" occasions")
	}

	// gender only ranks; it is never surfaced as a reason
	if ctx.Gender != "" && (g.Gender == "" || g.Gender == ctx.Gender) {
		score += genderWeight
	}

	if score == 0 && !ctx.Empty() {
		return Ranked{}, false
	}

	reason := strings.Join(fragments, reasonSep)
	if reason == "" {
		reason = fallbackReason
	}
	return Ranked{Garment: g, Score: score, Reason: reason, Specific: specific}, true
}

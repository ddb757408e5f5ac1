package match

import (
	"strings"

	"stylematch/internal/domain"
)

// Constraints are hard filters. Zero values mean "not constrained".
type Constraints struct {
	Category string
	Color    string
	Search   string
	// Occasion is an explicit occasion filter, canonical or raw.
	Occasion   string
	Gender     string
	ExcludeIDs []string
}

// Directory maps partner id to partner record for the owners of a catalog slice.
type Directory map[string]domain.Partner

func (d Directory) Approved(id string) bool {
	p, ok := d[id]
	return ok && p.Approved
}

// Summary returns nil when the partner is unknown or not approved.
func (d Directory) Summary(id string) *domain.PartnerSummary {
	p, ok := d[id]
	if !ok || !p.Approved {
		return nil
	}
	s := p.Summary()
	return &s
}

// Filter narrows catalog to eligible garments matching c. The catalog may be
// an unfiltered superset of what the store was asked for. Garments are
// expected in normalized form (see NormalizeGarment).
func Filter(catalog []domain.Garment, partners Directory, c Constraints) []domain.Garment {
	exclude := make(map[string]struct{}, len(c.ExcludeIDs))
	for _, id := range c.ExcludeIDs {
		exclude[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(catalog))
	q := clean(c.Search)

	out := make([]domain.Garment, 0, len(catalog))
	for _, g := range catalog {
		if !g.Eligible() || !partners.Approved(g.OwnerID) {
			continue
		}
		// first eligible copy of an id wins
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		if _, skip := exclude[g.ID]; skip {
			continue
		}
		if c.Category != "" && g.Category != c.Category {
			continue
		}
		if c.Color != "" && g.Color != c.Color {
			continue
		}
		if q != "" && !matchesSearch(g, q) {
			continue
		}
		if c.Occasion != "" && len(g.OccasionTags) > 0 && !has(g.OccasionTags, c.Occasion) {
			continue
		}
		if c.Gender != "" && g.Gender != "" && g.Gender != c.Gender {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesSearch(g domain.Garment, q string) bool {
	for _, f := range []string{g.Name, g.Brand, g.Category, g.Color} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func has(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

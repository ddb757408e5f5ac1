package match

import "stylematch/internal/domain"

// Query is everything one suggestion request needs once collaborators have
// been consulted.
type Query struct {
	Context     Context
	Constraints Constraints
	Page        int
	Limit       int
	OccasionID  string
}

// Echo reports the normalized constraints for the response meta.
func (q Query) Echo() Filters {
	occ := q.Context.Occasion
	if occ == "" {
		occ = q.Constraints.Occasion
	}
	return Filters{
		Search:     clean(q.Constraints.Search),
		Category:   q.Constraints.Category,
		Color:      q.Constraints.Color,
		SkinTone:   q.Context.SkinTone,
		Gender:     q.Context.Gender,
		Occasion:   occ,
		OccasionID: q.OccasionID,
	}
}

// Suggest runs the whole pipeline over a catalog snapshot.
func Suggest(catalog []domain.Garment, partners Directory, q Query) Response {
	normalized := make([]domain.Garment, len(catalog))
	for i, g := range catalog {
		normalized[i] = NormalizeGarment(g)
	}
	candidates := Filter(normalized, partners, q.Constraints)
	ranked := Score(candidates, q.Context)
	return Assemble(Paginate(ranked, q.Page, q.Limit), partners, q.Echo())
}

package match

import "stylematch/internal/domain"

type Suggestion struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Category          string                 `json:"category"`
	Color             string                 `json:"color"`
	Image             string                 `json:"image,omitempty"`
	Price             float64                `json:"price"`
	Brand             string                 `json:"brand"`
	SuitableSkinTones []string               `json:"suitableSkinTones"`
	OccasionTags      []string               `json:"occasionTags"`
	MatchReason       string                 `json:"matchReason"`
	Partner           *domain.PartnerSummary `json:"partner"`
}

// PageInfo is reported both at the top level and inside meta.
type PageInfo struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Filters echoes the normalized constraints a response was computed with.
type Filters struct {
	Search     string `json:"search,omitempty"`
	Category   string `json:"category,omitempty"`
	Color      string `json:"color,omitempty"`
	SkinTone   string `json:"skinTone,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Occasion   string `json:"occasion,omitempty"`
	OccasionID string `json:"occasionId,omitempty"`
}

type Meta struct {
	PageInfo
	Filters Filters `json:"filters"`
}

type Response struct {
	Data []Suggestion `json:"data"`
	PageInfo
	Meta Meta `json:"meta"`
}

// Assemble shapes a page into the response payload, attaching each
// garment's partner card. It does not filter or re-score.
func Assemble(p Page, partners Directory, filters Filters) Response {
	data := make([]Suggestion, 0, len(p.Items))
	for _, r := range p.Items {
		g := r.Garment
		data = append(data, Suggestion{
			ID:                g.ID,
			Name:              g.Name,
			Category:          g.Category,
			Color:             g.Color,
			Image:             g.Image,
			Price:             g.Price,
			Brand:             g.Brand,
			SuitableSkinTones: nonNil(g.SuitableSkinTones),
			OccasionTags:      nonNil(g.OccasionTags),
			MatchReason:       r.Reason,
			Partner:           partners.Summary(g.OwnerID),
		})
	}
	info := PageInfo{Total: p.Total, Page: p.Page, Limit: p.Limit, Pages: p.Pages}
	return Response{Data: data, PageInfo: info, Meta: Meta{PageInfo: info, Filters: filters}}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

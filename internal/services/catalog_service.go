package services

import (
	"context"

	"stylematch/internal/domain"
	"stylematch/internal/repos"
)

type FacetStore interface {
	Facets(ctx context.Context) (categories, colors []repos.FacetRow, err error)
}

type CatalogService struct {
	Facets FacetStore
}

func NewCatalogService(f FacetStore) *CatalogService {
	return &CatalogService{Facets: f}
}

// FilterMetadata is what a client needs to build the suggestion form.
type FilterMetadata struct {
	SkinTones  []string      `json:"skinTones"`
	Occasions  []string      `json:"occasions"`
	Genders    []string      `json:"genders"`
	Categories []string      `json:"categories"`
	Colors     []string      `json:"colors"`
	InStock    InStockFacets `json:"inStock"`
}

type InStockFacets struct {
	Categories []repos.FacetRow `json:"categories"`
	Colors     []repos.FacetRow `json:"colors"`
}

func (s *CatalogService) Filters(ctx context.Context) (FilterMetadata, error) {
	cats, colors, err := s.Facets.Facets(ctx)
	if err != nil {
		return FilterMetadata{}, &domain.UpstreamError{Op: "facet fetch", Err: err}
	}
	return FilterMetadata{
		SkinTones:  domain.SkinTones,
		Occasions:  domain.Occasions,
		Genders:    domain.Genders,
		Categories: domain.Categories,
		Colors:     domain.Colors,
		InStock:    InStockFacets{Categories: cats, Colors: colors},
	}, nil
}

package services

import (
	"context"

	"stylematch/internal/domain"
	"stylematch/internal/metrics"
)

type GarmentLookup interface {
	Get(ctx context.Context, id string) (*domain.Garment, error)
}

type PartnerLookup interface {
	GetPartnerSummary(ctx context.Context, id string) (*domain.PartnerSummary, error)
}

type ViewStore interface {
	RecordView(ctx context.Context, garmentID, viewerID string) error
}

// ViewService records that a viewer opened a suggested garment. It sits
// beside the suggestion pipeline and never feeds back into ranking.
type ViewService struct {
	Garments GarmentLookup
	Partners PartnerLookup
	Views    ViewStore
}

func NewViewService(g GarmentLookup, p PartnerLookup, v ViewStore) *ViewService {
	return &ViewService{Garments: g, Partners: p, Views: v}
}

// Visible reports whether garmentID is a garment the engine could suggest.
// Hidden garments read as not found.
func (s *ViewService) Visible(ctx context.Context, garmentID string) error {
	g, err := s.Garments.Get(ctx, garmentID)
	if err != nil {
		return &domain.UpstreamError{Op: "garment fetch", Err: err}
	}
	if g == nil || !g.Eligible() {
		return &domain.NotFoundError{Resource: "garment", ID: garmentID}
	}
	p, err := s.Partners.GetPartnerSummary(ctx, g.OwnerID)
	if err != nil {
		return &domain.UpstreamError{Op: "partner fetch", Err: err}
	}
	if p == nil {
		return &domain.NotFoundError{Resource: "garment", ID: garmentID}
	}
	return nil
}

// RecordView is idempotent per (garment, viewer).
func (s *ViewService) RecordView(ctx context.Context, garmentID, viewerID string) error {
	if err := s.Views.RecordView(ctx, garmentID, viewerID); err != nil {
		metrics.ViewsRecorded.WithLabelValues("error").Inc()
		return &domain.UpstreamError{Op: "view write", Err: err}
	}
	metrics.ViewsRecorded.WithLabelValues("ok").Inc()
	return nil
}

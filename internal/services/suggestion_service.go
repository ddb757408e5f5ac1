package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"stylematch/internal/domain"
	applog "stylematch/internal/log"
	"stylematch/internal/match"
	"stylematch/internal/metrics"
	"stylematch/internal/repos"
	"stylematch/internal/validate"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

type CatalogStore interface {
	FetchPublicApprovedGarments(ctx context.Context, f repos.CatalogFilter) ([]domain.Garment, error)
}

type PartnerStore interface {
	PartnersByID(ctx context.Context, ids []string) ([]domain.Partner, error)
}

type OccasionStore interface {
	GetOccasion(ctx context.Context, id string) (*domain.Occasion, error)
}

type SuggestionRequest struct {
	Page       int    `validate:"min=1"`
	Limit      int    `validate:"min=1"`
	Search     string `validate:"max=50"`
	Category   string `validate:"omitempty,category"`
	Color      string `validate:"omitempty,color"`
	SkinTone   string
	Gender     string
	Occasion   string
	OccasionID string
}

type BreakerOptions struct {
	MaxFailures uint32
	Timeout     time.Duration
}

type SuggestionService struct {
	Catalog   CatalogStore
	Partners  PartnerStore
	Occasions OccasionStore
	MaxLimit  int

	breaker *gobreaker.CircuitBreaker[[]domain.Garment]
}

func NewSuggestionService(catalog CatalogStore, partners PartnerStore, occasions OccasionStore, maxLimit int, bo BreakerOptions) *SuggestionService {
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}
	if bo.MaxFailures == 0 {
		bo.MaxFailures = 5
	}
	st := gobreaker.Settings{
		Name:    "catalog",
		Timeout: bo.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= bo.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.CatalogBreakerOpen.Set(1)
			} else {
				metrics.CatalogBreakerOpen.Set(0)
			}
			applog.Info(nil, "catalog.breaker.state", map[string]any{"breaker": name, "from": from.String(), "to": to.String()})
		},
		// a caller giving up is not a store failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	}
	return &SuggestionService{
		Catalog:   catalog,
		Partners:  partners,
		Occasions: occasions,
		MaxLimit:  maxLimit,
		breaker:   gobreaker.NewCircuitBreaker[[]domain.Garment](st),
	}
}

// Suggest validates req, reads the catalog snapshot and runs the matching
// pipeline. Collaborator failures come back as *domain.UpstreamError, a
// missing occasion as *domain.NotFoundError, bad input as
// *domain.ValidationError. Zero matches is a normal response.
func (s *SuggestionService) Suggest(ctx context.Context, req SuggestionRequest) (resp match.Response, err error) {
	start := time.Now()
	defer func() {
		metrics.SuggestionLatency.Observe(time.Since(start).Seconds())
		metrics.SuggestionRequests.WithLabelValues(outcome(resp, err)).Inc()
	}()

	req, err = s.clean(req)
	if err != nil {
		return match.Response{}, err
	}

	occ, err := s.occasion(ctx, &req)
	if err != nil {
		return match.Response{}, err
	}

	q := match.Query{
		Context: match.Normalize(req.SkinTone, req.Gender, req.Occasion),
		Constraints: match.Constraints{
			Category: req.Category,
			Color:    req.Color,
			Search:   req.Search,
		},
		Page:       req.Page,
		Limit:      req.Limit,
		OccasionID: req.OccasionID,
	}

	if occ != nil {
		q.Context = match.ContextFromOccasion(*occ, q.Context)
		q.Constraints.ExcludeIDs = occ.WardrobeIDs
	}
	q.Constraints.Gender = q.Context.Gender
	q.Constraints.Occasion = q.Context.OccasionTag

	garments, err := s.breaker.Execute(func() ([]domain.Garment, error) {
		return s.Catalog.FetchPublicApprovedGarments(ctx, repos.CatalogFilter{
			Category: req.Category, Color: req.Color,
		})
	})
	if err != nil {
		return match.Response{}, &domain.UpstreamError{Op: "catalog fetch", Err: err}
	}
	metrics.CandidatesFetched.Observe(float64(len(garments)))

	partners, err := s.Partners.PartnersByID(ctx, ownerIDs(garments))
	if err != nil {
		return match.Response{}, &domain.UpstreamError{Op: "partner fetch", Err: err}
	}
	dir := make(match.Directory, len(partners))
	for _, p := range partners {
		dir[p.ID] = p
	}

	return match.Suggest(garments, dir, q), nil
}

// occasion loads the saved occasion the request refers to. An explicit
// OccasionID must exist. An Occasion value that is not a known label but is
// shaped like an id is tried as a reference; when no such occasion exists it
// stays a raw tag. On a hit req is rewritten to reference the occasion.
func (s *SuggestionService) occasion(ctx context.Context, req *SuggestionRequest) (*domain.Occasion, error) {
	id, explicit := req.OccasionID, req.OccasionID != ""
	if !explicit {
		label := strings.TrimSpace(req.Occasion)
		if label == "" || domain.IsOccasion(strings.ToLower(label)) {
			return nil, nil
		}
		var ok bool
		if id, ok = validate.ID(label); !ok {
			return nil, nil
		}
	}

	occ, err := s.Occasions.GetOccasion(ctx, id)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "occasion fetch", Err: err}
	}
	if occ == nil {
		if explicit {
			return nil, &domain.NotFoundError{Resource: "occasion", ID: id}
		}
		return nil, nil
	}
	if !explicit {
		req.OccasionID, req.Occasion = occ.ID, ""
	}
	return occ, nil
}

// clean lower-cases enum inputs, validates the request and clamps the limit.
func (s *SuggestionService) clean(req SuggestionRequest) (SuggestionRequest, error) {
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	req.Color = strings.ToLower(strings.TrimSpace(req.Color))
	req.OccasionID = strings.TrimSpace(req.OccasionID)
	if strings.TrimSpace(req.Search) != "" {
		q, ok := validate.Q(req.Search)
		if !ok {
			return req, &domain.ValidationError{Field: "search", Msg: "use letters, numbers and spaces only"}
		}
		req.Search = q
	} else {
		req.Search = ""
	}
	if err := validate.Struct(req); err != nil {
		return req, err
	}
	if req.Color != "" {
		req.Color, _ = domain.CanonicalColor(req.Color)
	}
	if req.OccasionID != "" {
		if _, ok := validate.ID(req.OccasionID); !ok {
			return req, &domain.ValidationError{Field: "occasionId", Msg: "invalid id"}
		}
	}
	if req.Limit > s.MaxLimit {
		req.Limit = s.MaxLimit
	}
	return req, nil
}

func ownerIDs(gs []domain.Garment) []string {
	seen := make(map[string]struct{}, len(gs))
	ids := make([]string, 0, len(gs))
	for _, g := range gs {
		if _, ok := seen[g.OwnerID]; ok {
			continue
		}
		seen[g.OwnerID] = struct{}{}
		ids = append(ids, g.OwnerID)
	}
	sort.Strings(ids)
	return ids
}

func outcome(resp match.Response, err error) string {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ue *domain.UpstreamError
	)
	switch {
	case err == nil && resp.Total == 0:
		return "empty"
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &ue):
		return "upstream"
	default:
		return "error"
	}
}

package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"stylematch/internal/domain"
)

type PartnerRepo struct{ db *sqlx.DB }

func NewPartnerRepo(db *sqlx.DB) *PartnerRepo { return &PartnerRepo{db: db} }

const partnerCols = `id, name, location, phone, email, approved`

// GetPartnerSummary returns the public card of an approved partner, or nil
// when the partner is missing or not approved.
func (r *PartnerRepo) GetPartnerSummary(ctx context.Context, id string) (*domain.PartnerSummary, error) {
	var ps []domain.Partner
	if err := r.db.SelectContext(ctx, &ps, `SELECT `+partnerCols+` FROM partners WHERE id = ?`, id); err != nil {
		return nil, err
	}
	if len(ps) == 0 || !ps[0].Approved {
		return nil, nil
	}
	s := ps[0].Summary()
	return &s, nil
}

// PartnersByID loads the given partners in one query. Unknown ids are absent
// from the result.
func (r *PartnerRepo) PartnersByID(ctx context.Context, ids []string) ([]domain.Partner, error) {
	if len(ids) == 0 {
		return []domain.Partner{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+partnerCols+` FROM partners WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	out := []domain.Partner{}
	err = r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, err
}

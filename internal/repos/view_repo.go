package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type ViewRepo struct{ db *sqlx.DB }

func NewViewRepo(db *sqlx.DB) *ViewRepo { return &ViewRepo{db: db} }

// RecordView marks garmentID as seen by viewerID. Repeats are no-ops.
func (r *ViewRepo) RecordView(ctx context.Context, garmentID, viewerID string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO garment_views(garment_id, viewer_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(garment_id, viewer_id) DO NOTHING
	`, garmentID, viewerID)
	return err
}

// Count returns the number of distinct viewers of a garment.
func (r *ViewRepo) Count(ctx context.Context, garmentID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM garment_views WHERE garment_id = ?`, garmentID)
	return n, err
}

package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"stylematch/internal/domain"
)

type OccasionRepo struct{ db *sqlx.DB }

func NewOccasionRepo(db *sqlx.DB) *OccasionRepo { return &OccasionRepo{db: db} }

type occasionRow struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Type      string `db:"type"`
	Date      string `db:"date"`
	Location  string `db:"location"`
	DressCode string `db:"dress_code"`
	Notes     string `db:"notes"`
	SkinTone  string `db:"skin_tone"`
}

// GetOccasion returns the saved occasion with its wardrobe ids, or nil when
// no such occasion exists.
func (r *OccasionRepo) GetOccasion(ctx context.Context, id string) (*domain.Occasion, error) {
	var rows []occasionRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT id, title, type, COALESCE(date,'') AS date, location, dress_code, notes, skin_tone
	  FROM occasions
	  WHERE id = ?
	`, id); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]

	wardrobe := []string{}
	if err := r.db.SelectContext(ctx, &wardrobe, `
	  SELECT garment_id FROM occasion_wardrobe WHERE occasion_id = ? ORDER BY garment_id
	`, id); err != nil {
		return nil, err
	}

	return &domain.Occasion{
		ID: row.ID, Title: row.Title, Type: row.Type, Date: parseTime(row.Date),
		Location: row.Location, DressCode: row.DressCode, Notes: row.Notes,
		SkinTone: row.SkinTone, WardrobeIDs: wardrobe,
	}, nil
}

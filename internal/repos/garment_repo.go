package repos

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"stylematch/internal/domain"
)

type GarmentRepo struct{ db *sqlx.DB }

func NewGarmentRepo(db *sqlx.DB) *GarmentRepo { return &GarmentRepo{db: db} }

// CatalogFilter is what the store may push down into SQL. The engine
// re-applies every constraint, so a store may ignore any of these.
type CatalogFilter struct {
	Category string
	Color    string
}

type garmentRow struct {
	ID           string  `db:"id"`
	OwnerID      string  `db:"owner_id"`
	Name         string  `db:"name"`
	Category     string  `db:"category"`
	Color        string  `db:"color"`
	Brand        string  `db:"brand"`
	Image        string  `db:"image"`
	Price        float64 `db:"price"`
	Stock        int     `db:"stock"`
	Visibility   string  `db:"visibility"`
	SkinTones    string  `db:"skin_tones_json"`
	OccasionTags string  `db:"occasion_tags_json"`
	Gender       string  `db:"gender"`
	CreatedAt    string  `db:"created_at"`
}

const garmentCols = `
    g.id, g.owner_id, g.name, g.category, g.color, g.brand, g.image, g.price, g.stock,
    g.visibility, g.skin_tones_json, g.occasion_tags_json, g.gender,
    COALESCE(g.created_at,'') AS created_at`

func (r garmentRow) toDomain() (domain.Garment, error) {
	g := domain.Garment{
		ID: r.ID, OwnerID: r.OwnerID, Name: r.Name, Category: r.Category, Color: r.Color,
		Brand: r.Brand, Image: r.Image, Price: r.Price, Stock: r.Stock,
		Visibility: domain.Visibility(r.Visibility), Gender: r.Gender,
	}
	if err := decodeSet(r.SkinTones, &g.SuitableSkinTones); err != nil {
		return g, fmt.Errorf("garment %s skin tones: %w", r.ID, err)
	}
	if err := decodeSet(r.OccasionTags, &g.OccasionTags); err != nil {
		return g, fmt.Errorf("garment %s occasion tags: %w", r.ID, err)
	}
	g.CreatedAt = parseTime(r.CreatedAt)
	return g, nil
}

func decodeSet(raw string, out *[]string) error {
	if strings.TrimSpace(raw) == "" {
		*out = []string{}
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

// parseTime accepts RFC3339 and sqlite's CURRENT_TIMESTAMP layout.
// Unparseable values sort as the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// FetchPublicApprovedGarments returns public, in-stock garments from approved
// partners, with category/color/search pushed down when set.
func (r *GarmentRepo) FetchPublicApprovedGarments(ctx context.Context, f CatalogFilter) ([]domain.Garment, error) {
	where := `g.visibility = 'public' AND g.stock > 0 AND p.approved = 1`
	args := []any{}
	// Stored attributes may be non-canonical ("Coat", "gray"); compare the
	// way the engine normalizes them so pushdown never drops a match.
	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" {
		where += ` AND LOWER(TRIM(g.category)) = ?`
		args = append(args, c)
	}
	if c := strings.ToLower(strings.TrimSpace(f.Color)); c != "" {
		if canon, ok := domain.CanonicalColor(c); ok {
			c = canon
		}
		spellings := domain.ColorSpellings(c)
		where += ` AND LOWER(TRIM(g.color)) IN (?` + strings.Repeat(`,?`, len(spellings)-1) + `)`
		for _, sp := range spellings {
			args = append(args, sp)
		}
	}

	sql := `
  SELECT` + garmentCols + `
  FROM garments g
  JOIN partners p ON p.id = g.owner_id
  WHERE ` + where + `
  ORDER BY g.created_at DESC, g.id`

	var rows []garmentRow
	if err := r.db.SelectContext(ctx, &rows, sql, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Garment, 0, len(rows))
	for _, row := range rows {
		g, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Get returns one garment regardless of visibility; nil when missing.
func (r *GarmentRepo) Get(ctx context.Context, id string) (*domain.Garment, error) {
	var rows []garmentRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT`+garmentCols+` FROM garments g WHERE g.id = ?`, id); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	g, err := rows[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FacetRow counts eligible garments per category or color.
type FacetRow struct {
	Value string `db:"value" json:"value"`
	Count int    `db:"n" json:"count"`
}

// Facets reports categories and colors that currently have eligible stock,
// counted under their canonical spelling.
func (r *GarmentRepo) Facets(ctx context.Context) (categories, colors []FacetRow, err error) {
	const base = `
  FROM garments g JOIN partners p ON p.id = g.owner_id
  WHERE g.visibility = 'public' AND g.stock > 0 AND p.approved = 1`
	categories = []FacetRow{}
	var rawColors []FacetRow
	if err = r.db.SelectContext(ctx, &categories, `SELECT LOWER(TRIM(g.category)) AS value, COUNT(*) AS n`+base+` GROUP BY 1 ORDER BY 1`); err != nil {
		return nil, nil, err
	}
	if err = r.db.SelectContext(ctx, &rawColors, `SELECT LOWER(TRIM(g.color)) AS value, COUNT(*) AS n`+base+` GROUP BY 1 ORDER BY 1`); err != nil {
		return nil, nil, err
	}
	return categories, mergeColors(rawColors), nil
}

// mergeColors folds synonym spellings ("gray") into their canonical row.
func mergeColors(rows []FacetRow) []FacetRow {
	idx := make(map[string]int, len(rows))
	out := make([]FacetRow, 0, len(rows))
	for _, row := range rows {
		if c, ok := domain.CanonicalColor(row.Value); ok {
			row.Value = c
		}
		if i, seen := idx[row.Value]; seen {
			out[i].Count += row.Count
			continue
		}
		idx[row.Value] = len(out)
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

package repos_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"stylematch/internal/repos"
)

func seeded(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:", true)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGarmentRepo_FetchPublicApproved(t *testing.T) {
	ctx := context.Background()
	r := repos.NewGarmentRepo(seeded(t))

	all, err := r.FetchPublicApprovedGarments(ctx, repos.CatalogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 {
		t.Fatalf("want 6 eligible seed garments, got %d", len(all))
	}
	for _, g := range all {
		switch g.ID {
		case "g-draft-blazer", "g-soldout-tee", "g-pending-kaftan":
			t.Fatalf("ineligible garment %s returned", g.ID)
		}
		if g.CreatedAt.IsZero() {
			t.Fatalf("created_at not parsed for %s", g.ID)
		}
	}
	// newest first
	if all[0].ID != "g-gold-clutch" {
		t.Fatalf("want g-gold-clutch first, got %s", all[0].ID)
	}
	if got := all[0].SuitableSkinTones; len(got) != 2 || got[0] != "dark" {
		t.Fatalf("skin tones not decoded: %v", got)
	}

	some, err := r.FetchPublicApprovedGarments(ctx, repos.CatalogFilter{Category: "suit", Color: "navy"})
	if err != nil {
		t.Fatal(err)
	}
	if len(some) != 1 || some[0].ID != "g-navy-suit" {
		t.Fatalf("pushdown filter: got %+v", some)
	}
}

func TestGarmentRepo_Facets(t *testing.T) {
	r := repos.NewGarmentRepo(seeded(t))
	cats, colors, err := r.Facets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 6 || len(colors) != 6 {
		t.Fatalf("want 6 categories and 6 colors, got %d/%d", len(cats), len(colors))
	}
	for _, c := range cats {
		if c.Value == "jacket" || c.Value == "t-shirt" {
			t.Fatalf("facet from ineligible garment: %s", c.Value)
		}
	}
}

func TestPartnerRepo(t *testing.T) {
	ctx := context.Background()
	r := repos.NewPartnerRepo(seeded(t))

	s, err := r.GetPartnerSummary(ctx, "p-adire")
	if err != nil || s == nil || s.Name != "Adire House" {
		t.Fatalf("want Adire House, got %+v err=%v", s, err)
	}
	if s, err := r.GetPartnerSummary(ctx, "p-pending"); err != nil || s != nil {
		t.Fatalf("unapproved partner should be nil, got %+v err=%v", s, err)
	}
	if s, err := r.GetPartnerSummary(ctx, "p-nope"); err != nil || s != nil {
		t.Fatalf("missing partner should be nil, got %+v err=%v", s, err)
	}

	ps, err := r.PartnersByID(ctx, []string{"p-linea", "p-pending", "p-nope"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 || ps[0].ID != "p-linea" || !ps[0].Approved || ps[1].Approved {
		t.Fatalf("bad partners: %+v", ps)
	}
}

func TestOccasionRepo(t *testing.T) {
	ctx := context.Background()
	r := repos.NewOccasionRepo(seeded(t))

	o, err := r.GetOccasion(ctx, "o-wedding")
	if err != nil || o == nil {
		t.Fatalf("want occasion, got %+v err=%v", o, err)
	}
	if o.Type != "wedding" || o.SkinTone != "dark" || len(o.WardrobeIDs) != 1 || o.WardrobeIDs[0] != "g-gold-clutch" {
		t.Fatalf("bad occasion: %+v", o)
	}
	if o.Date.IsZero() {
		t.Fatal("date not parsed")
	}

	missing, err := r.GetOccasion(ctx, "o-nope")
	if err != nil || missing != nil {
		t.Fatalf("want nil, got %+v err=%v", missing, err)
	}
}

func TestViewRepo_Idempotent(t *testing.T) {
	ctx := context.Background()
	r := repos.NewViewRepo(seeded(t))

	for i := 0; i < 3; i++ {
		if err := r.RecordView(ctx, "g-navy-suit", "viewer-1"); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.RecordView(ctx, "g-navy-suit", "viewer-2"); err != nil {
		t.Fatal(err)
	}
	n, err := r.Count(ctx, "g-navy-suit")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("want 2 distinct viewers, got %d", n)
	}
}

func addSlateCoat(t *testing.T, db *sqlx.DB) {
	t.Helper()
	db.MustExec(`INSERT INTO garments(id,owner_id,name,category,color,brand,price,stock,visibility,created_at)
	  VALUES('g-slate-coat','p-linea','Slate Overcoat','Coat','gray','Linea',310.00,2,'public','2026-09-12T09:00:00Z')`)
}

func TestGarmentRepo_PushdownKeepsNonCanonicalRows(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	addSlateCoat(t, db)
	r := repos.NewGarmentRepo(db)

	for _, f := range []repos.CatalogFilter{
		{Category: "coat"},
		{Color: "grey"},
		{Color: "gray"},
		{Category: "coat", Color: "grey"},
	} {
		got, err := r.FetchPublicApprovedGarments(ctx, f)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != "g-slate-coat" {
			t.Fatalf("filter %+v: want g-slate-coat, got %+v", f, got)
		}
	}

	cats, colors, err := r.Facets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var coat, grey bool
	for _, c := range cats {
		coat = coat || (c.Value == "coat" && c.Count == 1)
	}
	for _, c := range colors {
		if c.Value == "gray" {
			t.Fatalf("synonym spelling leaked into facets: %+v", colors)
		}
		grey = grey || (c.Value == "grey" && c.Count == 1)
	}
	if !coat || !grey {
		t.Fatalf("want coat and grey facets, got %+v / %+v", cats, colors)
	}
}

package match_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylematch/internal/domain"
	"stylematch/internal/match"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func garment(id string, age time.Duration, tones ...string) domain.Garment {
	return domain.Garment{
		ID: id, Name: "Garment " + id, Category: "dress", Color: "black", Brand: "Acme",
		Price: 49.5, Stock: 3, Visibility: domain.VisibilityPublic,
		SuitableSkinTones: tones, OwnerID: "p-ok", CreatedAt: t0.Add(-age),
	}
}

func partners() match.Directory {
	return match.Directory{
		"p-ok":  {ID: "p-ok", Name: "Atelier", Location: "Lagos", Phone: "555", Email: "a@x.test", Approved: true},
		"p-new": {ID: "p-new", Name: "Pending", Approved: false},
	}
}

func ids(r match.Response) []string {
	out := make([]string, 0, len(r.Data))
	for _, s := range r.Data {
		out = append(out, s.ID)
	}
	return out
}

func TestNormalize(t *testing.T) {
	c := match.Normalize("  DARK ", "Women", "Wedding")
	assert.Equal(t, match.Context{SkinTone: "dark", Gender: "female", Occasion: "wedding"}, c)

	c = match.Normalize("olive", "robot", "Graduation ")
	assert.Equal(t, "", c.SkinTone)
	assert.Equal(t, "", c.Gender)
	assert.Equal(t, "", c.Occasion)
	assert.Equal(t, "graduation", c.OccasionTag)
	assert.True(t, c.Empty())
}

func TestContextFromOccasion(t *testing.T) {
	base := match.Normalize("fair", "male", "casual")

	c := match.ContextFromOccasion(domain.Occasion{Type: "other", DressCode: "Black Tie", SkinTone: "deep"}, base)
	assert.Equal(t, "formal", c.Occasion)
	assert.Equal(t, "deep", c.SkinTone)
	assert.Equal(t, "male", c.Gender)

	c = match.ContextFromOccasion(domain.Occasion{Type: "beach", SkinTone: "nope"}, base)
	assert.Equal(t, "beach", c.Occasion)
	assert.Equal(t, "fair", c.SkinTone)

	c = match.ContextFromOccasion(domain.Occasion{}, base)
	assert.Equal(t, "casual", c.Occasion)
}

// Scenario A
func TestSuggest_SkinToneExactBeatsUniversal(t *testing.T) {
	catalog := []domain.Garment{
		garment("g-dark", 3*time.Hour, "dark"),
		garment("g-any", 1*time.Hour),
		garment("g-fair", 0, "fair"),
	}
	q := match.Query{Context: match.Normalize("dark", "", ""), Page: 1, Limit: 12}
	resp := match.Suggest(catalog, partners(), q)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, []string{"g-dark", "g-any"}, ids(resp))
	assert.Equal(t, "Suits your dark skin tone", resp.Data[0].MatchReason)
	assert.Equal(t, "Universally flattering", resp.Data[1].MatchReason)
}

func TestScore_ExactMatchRankedAboveUniversal(t *testing.T) {
	// same points; the explicit tag outranks the newer open garment
	catalog := []domain.Garment{garment("g-any", time.Hour), garment("g-dark", 5*time.Hour, "dark")}
	ranked := match.Score(catalog, match.Context{SkinTone: "dark"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "g-dark", ranked[0].Garment.ID)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
}

// Scenario B and C
func TestPaginate(t *testing.T) {
	ranked := make([]match.Ranked, 5)
	for i := range ranked {
		ranked[i] = match.Ranked{Garment: domain.Garment{ID: fmt.Sprintf("g%d", i)}, Reason: "x"}
	}

	p := match.Paginate(ranked, 3, 2)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 5, p.Total)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "g4", p.Items[0].Garment.ID)

	p = match.Paginate(ranked, 10, 2)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 5, p.Total)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)

	p = match.Paginate(nil, 1, 12)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 1, p.Pages)
	assert.Empty(t, p.Items)
}

func TestPaginate_Consistency(t *testing.T) {
	for total := 0; total <= 13; total++ {
		ranked := make([]match.Ranked, total)
		for limit := 1; limit <= 5; limit++ {
			for page := 1; page <= 6; page++ {
				p := match.Paginate(ranked, page, limit)
				wantPages := (total + limit - 1) / limit
				if wantPages == 0 {
					wantPages = 1
				}
				want := total - (page-1)*limit
				if want > limit {
					want = limit
				}
				if want < 0 {
					want = 0
				}
				require.Equal(t, wantPages, p.Pages, "total=%d limit=%d", total, limit)
				require.Len(t, p.Items, want, "total=%d limit=%d page=%d", total, limit, page)
			}
		}
	}
}

// Scenario D
func TestSuggest_NoContextFallsBackToRecency(t *testing.T) {
	catalog := []domain.Garment{garment("g-old", 48*time.Hour, "fair"), garment("g-new", time.Hour)}
	resp := match.Suggest(catalog, partners(), match.Query{Page: 1, Limit: 12})

	assert.Equal(t, []string{"g-new", "g-old"}, ids(resp))
	for _, s := range resp.Data {
		assert.Equal(t, "Popular pick", s.MatchReason)
	}
}

func TestSuggest_VisibilityInvariant(t *testing.T) {
	private := garment("g-private", 0)
	private.Visibility = domain.VisibilityPrivate
	sold := garment("g-sold", 0)
	sold.Stock = 0
	pending := garment("g-pending", 0)
	pending.OwnerID = "p-new"
	orphan := garment("g-orphan", 0)
	orphan.OwnerID = "p-gone"

	catalog := []domain.Garment{private, sold, pending, orphan, garment("g-ok", 0)}
	resp := match.Suggest(catalog, partners(), match.Query{Page: 1, Limit: 12})
	assert.Equal(t, []string{"g-ok"}, ids(resp))
	require.NotNil(t, resp.Data[0].Partner)
	assert.Equal(t, "Atelier", resp.Data[0].Partner.Name)
}

func TestSuggest_OccasionHardExclusionAndReasons(t *testing.T) {
	party := garment("g-party", time.Hour)
	party.OccasionTags = []string{"Party", "wedding"}
	beach := garment("g-beach", 0)
	beach.OccasionTags = []string{"beach"}
	open := garment("g-open", 2*time.Hour)

	q := match.Query{Context: match.Normalize("tan", "", "wedding"), Page: 1, Limit: 12}
	resp := match.Suggest([]domain.Garment{party, beach, open}, partners(), q)

	assert.Equal(t, []string{"g-party", "g-open"}, ids(resp))
	assert.Equal(t, "Universally flattering • Great for wedding occasions", resp.Data[0].MatchReason)
}

func TestSuggest_RawOccasionTagFiltersOnly(t *testing.T) {
	grad := garment("g-grad", 0)
	grad.OccasionTags = []string{"graduation"}
	gala := garment("g-gala", 0)
	gala.OccasionTags = []string{"formal"}
	open := garment("g-open", time.Hour)

	ctx := match.Normalize("", "", "graduation")
	q := match.Query{Context: ctx, Constraints: match.Constraints{Occasion: ctx.OccasionTag}, Page: 1, Limit: 12}
	resp := match.Suggest([]domain.Garment{grad, gala, open}, partners(), q)

	assert.Equal(t, []string{"g-grad", "g-open"}, ids(resp))
	assert.Equal(t, "Popular pick", resp.Data[0].MatchReason)
	assert.Equal(t, "graduation", resp.Meta.Filters.Occasion)
}

func TestFilter_ConstraintsAndSearch(t *testing.T) {
	a := garment("g-a", 0)
	a.Name, a.Brand, a.Category, a.Color = "Linen Shirt", "Seabreeze", "shirt", "white"
	b := garment("g-b", 0)
	b.Name, b.Brand, b.Category, b.Color = "Evening Gown", "Nocturne", "dress", "navy"
	b.Gender = "female"
	dup := a

	all := []domain.Garment{a, b, dup}

	got := match.Filter(all, partners(), match.Constraints{})
	assert.Len(t, got, 2, "duplicates collapse")

	got = match.Filter(all, partners(), match.Constraints{Search: "NOCT"})
	require.Len(t, got, 1)
	assert.Equal(t, "g-b", got[0].ID)

	got = match.Filter(all, partners(), match.Constraints{Search: "white"})
	require.Len(t, got, 1)
	assert.Equal(t, "g-a", got[0].ID)

	got = match.Filter(all, partners(), match.Constraints{Category: "dress", Color: "navy"})
	require.Len(t, got, 1)

	got = match.Filter(all, partners(), match.Constraints{Gender: "male"})
	require.Len(t, got, 1)
	assert.Equal(t, "g-a", got[0].ID)

	got = match.Filter(all, partners(), match.Constraints{ExcludeIDs: []string{"g-a"}})
	require.Len(t, got, 1)
	assert.Equal(t, "g-b", got[0].ID)
}

func TestScore_GenderRanksWithoutReason(t *testing.T) {
	his := garment("g-his", 0)
	his.Gender = "male"
	open := garment("g-any", time.Hour)

	ranked := match.Score([]domain.Garment{his, open}, match.Context{Gender: "female"})
	require.Len(t, ranked, 1)
	assert.Equal(t, "g-any", ranked[0].Garment.ID)
	assert.Equal(t, 1, ranked[0].Score)
	assert.Equal(t, "Popular pick", ranked[0].Reason)
}

func TestSuggest_ExclusionInvariantAndDeterminism(t *testing.T) {
	tones := [][]string{{}, {"dark"}, {"fair", "light"}, {"dark", "deep"}, {"medium"}}
	var catalog []domain.Garment
	for i := 0; i < 40; i++ {
		g := garment(fmt.Sprintf("g%02d", i), time.Duration(i%7)*time.Hour, tones[i%len(tones)]...)
		if i%3 == 0 {
			g.OccasionTags = []string{"party"}
		}
		catalog = append(catalog, g)
	}

	for _, tone := range domain.SkinTones {
		q := match.Query{Context: match.Normalize(tone, "female", "party"), Page: 1, Limit: 100}
		first := match.Suggest(catalog, partners(), q)
		second := match.Suggest(catalog, partners(), q)
		require.Equal(t, ids(first), ids(second))

		seen := map[string]bool{}
		for _, s := range first.Data {
			require.NotEmpty(t, s.MatchReason)
			require.False(t, seen[s.ID], "duplicate %s", s.ID)
			seen[s.ID] = true
			if len(s.SuitableSkinTones) > 0 {
				require.Contains(t, s.SuitableSkinTones, tone)
			}
		}
	}
}

func TestAssemble_MissingPartnerIsNull(t *testing.T) {
	p := match.Page{Items: []match.Ranked{{Garment: garment("g1", 0), Reason: "Popular pick"}}, Total: 1, Page: 1, Limit: 12, Pages: 1}
	resp := match.Assemble(p, match.Directory{}, match.Filters{})
	require.Len(t, resp.Data, 1)
	assert.Nil(t, resp.Data[0].Partner)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Meta.Pages)
	assert.NotNil(t, resp.Data[0].OccasionTags)
}

func TestFilter_DuplicateIDKeepsEligibleCopy(t *testing.T) {
	hidden := garment("g-dup", time.Hour)
	hidden.Visibility = domain.VisibilityPrivate
	soldOut := garment("g-dup", time.Hour)
	soldOut.Stock = 0
	live := garment("g-dup", time.Hour)
	live.Name = "Live copy"
	again := garment("g-dup", time.Hour)
	again.Name = "Second live copy"

	got := match.Filter([]domain.Garment{hidden, soldOut, live, again}, partners(), match.Constraints{})
	require.Len(t, got, 1)
	assert.Equal(t, "Live copy", got[0].Name)
}

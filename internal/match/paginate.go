package match

// Page is one slice of a ranked list.
type Page struct {
	Items []Ranked
	Total int
	Page  int
	Limit int
	Pages int
}

// Paginate slices ranked into the requested page. It never panics: a page
// past the end (or below 1) yields no items but still reports Total and
// Pages. Callers validate page/limit; a limit below 1 is treated as 1.
func Paginate(ranked []Ranked, page, limit int) Page {
	if limit < 1 {
		limit = 1
	}
	total := len(ranked)
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	p := Page{Items: []Ranked{}, Total: total, Page: page, Limit: limit, Pages: pages}
	if page < 1 {
		return p
	}
	start := (page - 1) * limit
	if start >= total {
		return p
	}
	end := start + limit
	if end > total {
		end = total
	}
	p.Items = ranked[start:end]
	return p
}

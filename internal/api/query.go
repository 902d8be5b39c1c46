package api

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"confdex/internal/catalog"
	"confdex/internal/models"
	"confdex/internal/util"
)

// The unified query endpoint runs over the raw rows, not the aggregates. It
// is a separate surface from the list endpoints, with its own parameter
// vocabulary and defaults, and stays that way on purpose.

type queryEntity int

const (
	entityPapers queryEntity = iota
	entityPaperByID
	entityAuthors
	entitySessions
)

func parseEntity(s string) queryEntity {
	switch s {
	case "paperById":
		return entityPaperByID
	case "authors":
		return entityAuthors
	case "sessions":
		return entitySessions
	default:
		return entityPapers
	}
}

// window is the offset/limit slice shared by the list-shaped entities.
type window struct {
	limit  int
	offset int
}

type paperQuery struct {
	q        string
	year     string
	session  string
	division string
	author   string
	window   window
}

type paperByIDQuery struct {
	id string
}

type authorQuery struct {
	q      string
	year   string
	window window
}

type sessionQuery struct {
	q        string
	year     string
	division string
	window   window
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	ds, err := s.store.Dataset(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	q := r.URL.Query()
	win := parseWindow(q)
	switch parseEntity(q.Get("entity")) {
	case entityPaperByID:
		queryPaperByID(w, ds, paperByIDQuery{id: q.Get("id")})
	case entityAuthors:
		queryAuthors(w, ds, authorQuery{q: q.Get("q"), year: q.Get("year"), window: win})
	case entitySessions:
		querySessions(w, ds, sessionQuery{q: q.Get("q"), year: q.Get("year"), division: q.Get("division"), window: win})
	default:
		queryPapers(w, ds, paperQuery{
			q:        q.Get("q"),
			year:     q.Get("year"),
			session:  q.Get("session"),
			division: q.Get("division"),
			author:   q.Get("author"),
			window:   win,
		})
	}
}

func queryPaperByID(w http.ResponseWriter, ds models.Dataset, pq paperByIDQuery) {
	if pq.id == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("id is required: %w", util.ErrBadRequest))
		return
	}
	var paper *models.PaperRow
	for i := range ds.Papers {
		if ds.Papers[i].PaperID == pq.id {
			paper = &ds.Papers[i]
			break
		}
	}
	if paper == nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("paper %s: %w", pq.id, util.ErrNotFound))
		return
	}
	authors := make([]models.AuthorRow, 0)
	for _, a := range ds.Authors {
		if a.PaperID == pq.id {
			authors = append(authors, a)
		}
	}
	sort.SliceStable(authors, func(i, j int) bool { return authors[i].Position < authors[j].Position })
	writeJSON(w, http.StatusOK, map[string]any{"paper": paper, "authors": authors})
}

func queryPapers(w http.ResponseWriter, ds models.Dataset, pq paperQuery) {
	list := ds.Papers
	if pq.q != "" {
		list = filterRows(list, func(p models.PaperRow) bool {
			return catalog.ContainsFold(p.Title, pq.q) ||
				catalog.ContainsFold(p.Abstract, pq.q) ||
				anyRowContains(p.Authors, pq.q)
		})
	}
	if pq.year != "" {
		n, err := strconv.Atoi(pq.year)
		list = filterRows(list, func(p models.PaperRow) bool { return err == nil && p.Year == n })
	}
	if pq.session != "" {
		list = filterRows(list, func(p models.PaperRow) bool { return catalog.ContainsFold(p.Session, pq.session) })
	}
	if pq.division != "" {
		list = filterRows(list, func(p models.PaperRow) bool { return catalog.ContainsFold(p.Division, pq.division) })
	}
	if pq.author != "" {
		list = filterRows(list, func(p models.PaperRow) bool { return anyRowContains(p.Authors, pq.author) })
	}
	writeWindow(w, list, pq.window)
}

func queryAuthors(w http.ResponseWriter, ds models.Dataset, aq authorQuery) {
	list := ds.Authors
	if aq.q != "" {
		list = filterRows(list, func(a models.AuthorRow) bool {
			return catalog.ContainsFold(a.Name, aq.q) ||
				catalog.ContainsFold(a.Affiliation, aq.q) ||
				catalog.ContainsFold(a.Title, aq.q)
		})
	}
	if aq.year != "" {
		n, err := strconv.Atoi(aq.year)
		list = filterRows(list, func(a models.AuthorRow) bool { return err == nil && a.Year == n })
	}
	writeWindow(w, list, aq.window)
}

func querySessions(w http.ResponseWriter, ds models.Dataset, sq sessionQuery) {
	list := ds.Sessions
	if sq.q != "" {
		list = filterRows(list, func(s models.SessionRow) bool {
			return catalog.ContainsFold(s.Title, sq.q) ||
				catalog.ContainsFold(s.Type, sq.q) ||
				catalog.ContainsFold(s.Division, sq.q)
		})
	}
	if sq.year != "" {
		n, err := strconv.Atoi(sq.year)
		list = filterRows(list, func(s models.SessionRow) bool { return err == nil && s.Year == n })
	}
	if sq.division != "" {
		list = filterRows(list, func(s models.SessionRow) bool { return catalog.ContainsFold(s.Division, sq.division) })
	}
	writeWindow(w, list, sq.window)
}

func parseWindow(q url.Values) window {
	limit := 20
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = min(100, max(1, n))
		}
	}
	offset := 0
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return window{limit: limit, offset: offset}
}

func writeWindow[T any](w http.ResponseWriter, items []T, win window) {
	total := len(items)
	start := min(win.offset, total)
	end := min(start+win.limit, total)
	writeJSON(w, http.StatusOK, map[string]any{"total": total, "items": items[start:end]})
}

func filterRows[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func anyRowContains(list []string, needle string) bool {
	for _, s := range list {
		if catalog.ContainsFold(s, needle) {
			return true
		}
	}
	return false
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"confdex/internal/catalog"
	"confdex/internal/config"
	"confdex/internal/models"
)

type stubLoader struct {
	ds  models.Dataset
	err error
}

func (l *stubLoader) Load(_ context.Context) (models.Dataset, error) {
	if l.err != nil {
		return models.Dataset{}, l.err
	}
	return l.ds, nil
}

func testDataset() models.Dataset {
	return models.Dataset{
		Papers: []models.PaperRow{
			{PaperID: "P1", Title: "Archives of Memory", Abstract: "On remembering", Year: 2010, Session: "S1", Division: "D1", Authors: []string{"Bob", "Alice"}},
			{PaperID: "P2", Title: "Counting Sessions", Year: 2011, Session: "S2", Division: "D2", Authors: []string{"Carol"}},
		},
		Authors: []models.AuthorRow{
			{PaperID: "P1", Title: "Archives of Memory", Name: "Alice", Position: 2, Affiliation: "Uni A", Year: 2010},
			{PaperID: "P1", Title: "Archives of Memory", Name: "Bob", Position: 1, Affiliation: "Uni B", Year: 2010},
			{PaperID: "P2", Title: "Counting Sessions", Name: "Carol", Position: 1, Affiliation: "Uni C", Year: 2011},
		},
		Sessions: []models.SessionRow{
			{Title: "S1", Division: "D1", Year: 2010, Type: "panel", ChairName: "Dana"},
			{Title: "S2", Division: "D2", Year: 2011},
		},
	}
}

func newTestServer(loader *stubLoader) http.Handler {
	s := NewServer(config.Config{}, catalog.NewStore(loader))
	return s.Routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListPapersPaged(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/papers")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Total int                `json:"total"`
		Page  int                `json:"page"`
		Limit int                `json:"limit"`
		Items []catalog.PaperAgg `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 2, page.Total)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 100, page.Limit)
	require.Len(t, page.Items, 2)
	require.Equal(t, []string{"Bob", "Alice"}, page.Items[0].AuthorNames)
}

func TestListPapersAll(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/papers?limit=all&year=2010")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []catalog.PaperAgg
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, "P1", items[0].PaperID)
}

func TestListPapersFiltered(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/papers?year=2010&has_author=bob")
	var page struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 1, page.Total)
}

func TestListAuthorsDefaults(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/authors")
	var page struct {
		Limit int                 `json:"limit"`
		Items []catalog.AuthorAgg `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 50, page.Limit)
	require.Len(t, page.Items, 3)
}

func TestGetPaperByID(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/papers/P1")
	require.Equal(t, http.StatusOK, rec.Code)

	var p catalog.PaperAgg
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "P1", p.PaperID)
	require.NotNil(t, p.SessionInfo)

	rec = get(t, h, "/papers/NOPE")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "CD-API-4004")
}

func TestQueryDefaultsToPapers(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/query?q=memory")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Total int               `json:"total"`
		Items []models.PaperRow `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Total)
	require.Equal(t, "P1", res.Items[0].PaperID)
}

func TestQueryPaperByID(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})

	rec := get(t, h, "/query?entity=paperById")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "CD-API-4001")

	rec = get(t, h, "/query?entity=paperById&id=P1")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Paper   models.PaperRow    `json:"paper"`
		Authors []models.AuthorRow `json:"authors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "P1", res.Paper.PaperID)
	require.Len(t, res.Authors, 2)
	require.Equal(t, "Bob", res.Authors[0].Name)

	rec = get(t, h, "/query?entity=paperById&id=NOPE")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQueryAuthorsWindow(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/query?entity=authors&limit=1&offset=1")
	var res struct {
		Total int                `json:"total"`
		Items []models.AuthorRow `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, "Bob", res.Items[0].Name)
}

func TestQueryLimitClamped(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/query?entity=sessions&limit=9999")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 2, res.Total)
}

func TestLoaderFailureSurfaces(t *testing.T) {
	h := newTestServer(&stubLoader{err: errors.New("bucket unreachable")})
	rec := get(t, h, "/papers")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "bucket unreachable")
}

func TestHealthz(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestStats(t *testing.T) {
	h := newTestServer(&stubLoader{ds: testDataset()})
	rec := get(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats catalog.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.NotEmpty(t, stats.Version)
	require.Equal(t, 2, stats.Papers)
	require.Equal(t, 3, stats.Authors)
	require.Equal(t, 2, stats.Sessions)
}

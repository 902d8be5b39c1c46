package catalog

import (
	"math"
	"testing"
)

func TestPaginateThirdPage(t *testing.T) {
	items := make([]int, 250)
	for i := range items {
		items[i] = i + 1
	}
	page := Paginate(items, 3, 100)
	if page.Total != 250 {
		t.Fatalf("expected total 250 got %d", page.Total)
	}
	if len(page.Items) != 50 {
		t.Fatalf("expected 50 items got %d", len(page.Items))
	}
	if page.Items[0] != 201 || page.Items[49] != 250 {
		t.Fatalf("unexpected slice bounds: %d..%d", page.Items[0], page.Items[49])
	}
}

func TestPaginateClamps(t *testing.T) {
	items := []string{"a", "b", "c"}
	page := Paginate(items, 0, 0)
	if page.Page != 1 || page.Limit != 1 {
		t.Fatalf("expected clamped page=1 limit=1, got page=%d limit=%d", page.Page, page.Limit)
	}
	if len(page.Items) != 1 || page.Items[0] != "a" {
		t.Fatalf("unexpected items: %v", page.Items)
	}
	page = Paginate(items, 1, 5000)
	if page.Limit != 1000 {
		t.Fatalf("expected limit clamped to 1000, got %d", page.Limit)
	}
}

func TestPaginatePastEnd(t *testing.T) {
	page := Paginate([]int{1, 2, 3}, 9, 10)
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %v", page.Items)
	}
	if page.Total != 3 {
		t.Fatalf("total must be pre-slice length, got %d", page.Total)
	}
}

func TestPaginateHugePageDoesNotOverflow(t *testing.T) {
	page := Paginate([]int{1, 2, 3}, math.MaxInt, 1000)
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %v", page.Items)
	}
	if page.Total != 3 {
		t.Fatalf("total must be pre-slice length, got %d", page.Total)
	}
	page = Paginate([]int{1, 2, 3}, math.MaxInt, 1)
	if len(page.Items) != 0 || page.Total != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int(nil), 1, 100)
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("unexpected page for empty input: %+v", page)
	}
}

package pagination

import "testing"

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	if p.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", p.Page)
	}
	if p.PerPage != 100 {
		t.Fatalf("expected per_page clamped to 100, got %d", p.PerPage)
	}

	p = &PaginationParams{Page: -3, PerPage: 0}
	p.Validate()
	if p.Page != 1 || p.PerPage != 15 {
		t.Fatalf("expected defaults 1/15, got %d/%d", p.Page, p.PerPage)
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 15}
	if p.Offset() != 30 {
		t.Fatalf("expected offset 30, got %d", p.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 35)
	if pag.TotalPages != 4 {
		t.Fatalf("expected 4 pages, got %d", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Fatalf("expected both next and prev on a middle page")
	}

	pag = NewPagination(1, 10, 5)
	if pag.TotalPages != 1 || pag.HasNext || pag.HasPrev {
		t.Fatalf("unexpected pagination for single page: %+v", pag)
	}
}

package request

import "testing"

func TestPaginatedRequestBounds(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 10, 0},
		{"first page", 1, 10, 10, 0},
		{"third page", 3, 10, 10, 20},
		{"per_page capped", 1, 500, 100, 0},
		{"negative page", -2, 10, 10, 0},
		{"negative per_page", 2, -1, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaginatedRequest{Page: tt.page, PerPage: tt.perPage}
			if got := p.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", got, tt.wantLimit)
			}
			if got := p.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
		})
	}
}

package models

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		total      int64
		wantPages  int
		wantFirst  bool
		wantLast   bool
	}{
		{name: "empty result", page: 0, size: 20, total: 0, wantPages: 0, wantFirst: true, wantLast: true},
		{name: "single partial page", page: 0, size: 20, total: 5, wantPages: 1, wantFirst: true, wantLast: true},
		{name: "exact page boundary", page: 0, size: 10, total: 20, wantPages: 2, wantFirst: true, wantLast: false},
		{name: "middle page", page: 1, size: 10, total: 35, wantPages: 4, wantFirst: false, wantLast: false},
		{name: "last page", page: 3, size: 10, total: 35, wantPages: 4, wantFirst: false, wantLast: true},
		{name: "page past the end", page: 9, size: 10, total: 35, wantPages: 4, wantFirst: false, wantLast: true},
		{name: "zero size falls back to default", page: 0, size: 0, total: 40, wantPages: 2, wantFirst: true, wantLast: false},
		{name: "negative page clamped", page: -1, size: 10, total: 5, wantPages: 1, wantFirst: true, wantLast: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[int](nil, tt.page, tt.size, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.First != tt.wantFirst {
				t.Errorf("First = %v, want %v", p.First, tt.wantFirst)
			}
			if p.Last != tt.wantLast {
				t.Errorf("Last = %v, want %v", p.Last, tt.wantLast)
			}
			if p.Content == nil {
				t.Error("Content should never be nil")
			}
		})
	}
}

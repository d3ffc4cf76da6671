package handlers

import (
	"testing"

	"vendora/internal/apperr"
	"vendora/internal/models"
)

func TestSellerStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.ProductStatus
		wantErr bool
	}{
		{name: "active", raw: "active", want: models.ProductStatusActive},
		{name: "inactive", raw: "inactive", want: models.ProductStatusInactive},
		{name: "banned is admin-only", raw: "banned", wantErr: true},
		{name: "out_of_stock is derived", raw: "out_of_stock", wantErr: true},
		{name: "arbitrary junk", raw: "ACTIVE!", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sellerStatus(tt.raw)
			if tt.wantErr {
				if !apperr.IsInvalid(err) {
					t.Fatalf("sellerStatus(%q) err = %v, want invalid", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("sellerStatus(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("sellerStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

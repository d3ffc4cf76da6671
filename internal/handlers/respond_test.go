package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vendora/internal/apperr"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NotFound("product"), http.StatusNotFound},
		{"duplicate", apperr.Duplicate("slug taken"), http.StatusConflict},
		{"invalid", apperr.Invalid("bad input"), http.StatusBadRequest},
		{"unauthorized", apperr.Unauthorized("no token"), http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("wrong role"), http.StatusForbidden},
		{"unknown", errors.New("pg connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal detail leaked: %q", body.Error)
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 0, 20},
		{"page=2&size=50", 2, 50},
		{"page=-3&size=0", 0, 20},
		{"size=1000", 0, 100},
		{"page=abc&size=xyz", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			page, size := pageParams(r)
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("got (%d, %d), want (%d, %d)", page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestQueryDecimal(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?min_price=19.99", nil)
	d, err := queryDecimal(r, "min_price")
	if err != nil || d == nil || d.String() != "19.99" {
		t.Errorf("got (%v, %v)", d, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	if d, err := queryDecimal(r, "min_price"); d != nil || err != nil {
		t.Errorf("absent param: got (%v, %v), want (nil, nil)", d, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/?min_price=cheap", nil)
	if _, err := queryDecimal(r, "min_price"); !apperr.IsInvalid(err) {
		t.Errorf("garbage param: got %v, want invalid", err)
	}
}

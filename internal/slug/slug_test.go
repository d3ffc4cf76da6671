package slug

import (
	"errors"
	"testing"
)

// TestGenerate exercises the slug generator with typical catalog names,
// special characters, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal names ---
		{name: "simple two words", input: "Summer Sale", want: "summer-sale"},
		{name: "name with year", input: "Summer Sale 2026", want: "summer-sale-2026"},
		{name: "already lowercase", input: "electronics", want: "electronics"},
		{name: "mixed case", input: "Mens Running Shoes", want: "mens-running-shoes"},

		// --- Special characters ---
		{name: "punctuation stripped", input: "Phones, Tablets & More!", want: "phones-tablets-more"},
		{name: "parentheses", input: "AirPods (3rd Gen)", want: "airpods-3rd-gen"},
		{name: "slashes removed", input: "TV/Audio", want: "tvaudio"},
		{name: "percent and currency", input: "50% off under $100", want: "50-off-under-100"},

		// --- Whitespace and hyphens ---
		{name: "surrounding spaces", input: "  home decor  ", want: "home-decor"},
		{name: "multiple hyphens collapsed", input: "mens---wear", want: "mens-wear"},
		{name: "leading and trailing hyphens trimmed", input: "--sale--", want: "sale"},
		{name: "existing hyphen preserved", input: "t-shirts", want: "t-shirts"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only special characters", input: "!@#$%", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "single character", input: "A", want: "a"},
		{name: "all numbers", input: "2026", want: "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{"summer-sale", "electronics", "a", "123"}
	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

func TestMakeUnique(t *testing.T) {
	t.Run("no collision keeps base slug", func(t *testing.T) {
		got, err := MakeUnique("Summer Sale", func(string) (bool, error) { return false, nil })
		if err != nil {
			t.Fatalf("MakeUnique: %v", err)
		}
		if got != "summer-sale" {
			t.Errorf("slug = %q, want %q", got, "summer-sale")
		}
	})

	t.Run("collision appends numeric suffix", func(t *testing.T) {
		existing := map[string]bool{"summer-sale": true}
		got, err := MakeUnique("Summer Sale", func(s string) (bool, error) { return existing[s], nil })
		if err != nil {
			t.Fatalf("MakeUnique: %v", err)
		}
		if got != "summer-sale-2" {
			t.Errorf("slug = %q, want %q", got, "summer-sale-2")
		}
	})

	t.Run("suffix increments past every collision", func(t *testing.T) {
		existing := map[string]bool{"summer-sale": true, "summer-sale-2": true, "summer-sale-3": true}
		got, err := MakeUnique("Summer Sale", func(s string) (bool, error) { return existing[s], nil })
		if err != nil {
			t.Fatalf("MakeUnique: %v", err)
		}
		if got != "summer-sale-4" {
			t.Errorf("slug = %q, want %q", got, "summer-sale-4")
		}
	})

	t.Run("lookup error propagates", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := MakeUnique("Summer Sale", func(string) (bool, error) { return false, boom })
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want %v", err, boom)
		}
	})
}

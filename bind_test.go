package endpoint

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

type listQuery struct {
	Limit  int       `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int       `query:"offset"`
	Active bool      `query:"active"`
	Score  float64   `query:"score"`
	Tags   []string  `query:"tag"`
	Sort   string    `query:"sort" validate:"omitempty,oneof=asc desc"`
	Since  time.Time `query:"since"`
	Page   *int      `query:"page"`
}

func TestBindSchema(t *testing.T) {
	schema := Bind[listQuery]()

	t.Run("coerces strings to typed fields", func(t *testing.T) {
		got, err := schema.Parse(url.Values{
			"limit":  {"5"},
			"offset": {"20"},
			"active": {"true"},
			"score":  {"2.5"},
			"sort":   {"desc"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Limit != 5 {
			t.Errorf("Limit = %v (%T), want int 5", got.Limit, got.Limit)
		}
		if got.Offset != 20 || !got.Active || got.Score != 2.5 || got.Sort != "desc" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("repeated keys fill string slices", func(t *testing.T) {
		got, err := schema.Parse(url.Values{"tag": {"a", "b", "c"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Tags) != 3 || got.Tags[0] != "a" || got.Tags[2] != "c" {
			t.Errorf("Tags = %v", got.Tags)
		}
	})

	t.Run("pointer fields allocate on demand", func(t *testing.T) {
		got, err := schema.Parse(url.Values{"page": {"3"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Page == nil || *got.Page != 3 {
			t.Errorf("Page = %v", got.Page)
		}
	})

	t.Run("timestamps parse from common layouts", func(t *testing.T) {
		got, err := schema.Parse(url.Values{"since": {"2026-08-30"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Since.Year() != 2026 || got.Since.Month() != time.August {
			t.Errorf("Since = %v", got.Since)
		}
	})

	t.Run("missing keys keep zero values", func(t *testing.T) {
		got, err := schema.Parse(url.Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Limit != 0 || got.Page != nil || got.Tags != nil {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("bad coercion reports the parameter name", func(t *testing.T) {
		_, err := schema.Parse(url.Values{"limit": {"abc"}})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if len(ve.Issues) != 1 || ve.Issues[0].Path != "limit" {
			t.Errorf("issues = %v", ve.Issues)
		}
	})

	t.Run("validator tags run after binding", func(t *testing.T) {
		_, err := schema.Parse(url.Values{"limit": {"500"}})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("oneof rejects unknown values", func(t *testing.T) {
		_, err := schema.Parse(url.Values{"sort": {"sideways"}})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})
}

func TestBindInputShapes(t *testing.T) {
	type params struct {
		ID string `query:"id" validate:"required"`
	}
	schema := Bind[params]()

	t.Run("map of strings", func(t *testing.T) {
		got, err := schema.Parse(map[string]string{"id": "abc"})
		if err != nil || got.ID != "abc" {
			t.Errorf("got %+v, %v", got, err)
		}
	})

	t.Run("map of string slices", func(t *testing.T) {
		got, err := schema.Parse(map[string][]string{"id": {"abc"}})
		if err != nil || got.ID != "abc" {
			t.Errorf("got %+v, %v", got, err)
		}
	})

	t.Run("map of any", func(t *testing.T) {
		got, err := schema.Parse(map[string]any{"id": 42})
		if err != nil || got.ID != "42" {
			t.Errorf("got %+v, %v", got, err)
		}
	})

	t.Run("nil input fails required", func(t *testing.T) {
		_, err := schema.Parse(nil)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("unsupported input shape", func(t *testing.T) {
		_, err := schema.Parse(12345)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("field name fallback is the lowercased field", func(t *testing.T) {
		type plain struct {
			Name string
		}
		got, err := Bind[plain]().Parse(map[string]string{"name": "x"})
		if err != nil || got.Name != "x" {
			t.Errorf("got %+v, %v", got, err)
		}
	})
}

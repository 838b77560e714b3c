package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/coffee-storefront/pkg/errors"
)

type addRequest struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"","quantity":0}`))
	var dest addRequest
	err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]string)
	if details["id"] != "is required" || details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"latte","quantity":1,"price":0}`))
	var dest addRequest
	if err := DecodeJSON(httptest.NewRecorder(), req, &dest); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"latte","quantity":2}`))
	var dest addRequest
	if err := DecodeJSONBody(httptest.NewRecorder(), req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.ID != "latte" || dest.Quantity != 2 {
		t.Fatalf("unexpected decode %+v", dest)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x&big=500", nil)
	if v, err := ParseQueryInt(req, "limit", 10, 1, 100); err != nil || v != 5 {
		t.Fatalf("expected 5, got %d (%v)", v, err)
	}
	if v, err := ParseQueryInt(req, "missing", 10, 1, 100); err != nil || v != 10 {
		t.Fatalf("expected default, got %d (%v)", v, err)
	}
	if _, err := ParseQueryInt(req, "bad", 10, 1, 100); err == nil {
		t.Fatal("expected error for non numeric value")
	}
	if _, err := ParseQueryInt(req, "big", 10, 1, 100); err == nil {
		t.Fatal("expected error for out of range value")
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]struct {
		want int
		ok   bool
	}{
		"7":    {7, true},
		" 12 ": {12, true},
		"0":    {0, false},
		"-3":   {0, false},
		"abc":  {0, false},
		"":     {0, false},
	}
	for raw, tc := range cases {
		got, ok := ParseID(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseID(%q) = %d, %v; want %d, %v", raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  latte  ", 0); got != "latte" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("expresso-tradicional", 8); got != "expresso" {
		t.Fatalf("unexpected %q", got)
	}
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func localeThrough(t *testing.T, req *http.Request, fallback string, lookup CountryLookup) string {
	t.Helper()
	var got string
	handler := Locale(fallback, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestLocaleHeaderWins(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Locale", "id")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")

	if got := localeThrough(t, req, "en", nil); got != "id" {
		t.Fatalf("locale mismatch: got %q want %q", got, "id")
	}
}

func TestLocaleAcceptLanguage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9,en;q=0.8")

	if got := localeThrough(t, req, "en", nil); got != "de-DE" {
		t.Fatalf("locale mismatch: got %q want %q", got, "de-DE")
	}
}

func TestLocaleFallsBackToGeoIPCountry(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:1234"

	lookup := func(ip string) (string, error) {
		if ip != "203.0.113.9" {
			t.Fatalf("unexpected ip %q", ip)
		}
		return "ID", nil
	}

	if got := localeThrough(t, req, "en", lookup); got != "id" {
		t.Fatalf("locale mismatch: got %q want %q", got, "id")
	}
}

func TestLocaleLookupFailureUsesDefault(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	lookup := func(string) (string, error) { return "", errors.New("unavailable") }

	if got := localeThrough(t, req, "en", lookup); got != "en" {
		t.Fatalf("locale mismatch: got %q want %q", got, "en")
	}
}

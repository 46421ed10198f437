package workshop

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testResolver(srv *httptest.Server) *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: srv.URL + "/?id=",
	}
}

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "12345":
			w.Write([]byte(`<html><head><title>Steam Workshop :: Better UI</title></head><body/></html>`))
		case "666":
			w.Write([]byte(`<html><head><title>Steam Community :: Error</title></head><body/></html>`))
		case "notitle":
			w.Write([]byte(`<html><head></head><body>nothing here</body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	r := testResolver(srv)

	name, err := r.Resolve("12345")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if name != "Better UI" {
		t.Errorf("Resolve(12345) = %q, want Better UI", name)
	}

	if _, err := r.Resolve("666"); err == nil || !strings.Contains(err.Error(), "no workshop item") {
		t.Errorf("Resolve(666) error = %v, want a no-such-item error", err)
	}
	if _, err := r.Resolve("notitle"); err == nil {
		t.Error("Resolve should fail when the page has no title")
	}
	if _, err := r.Resolve("gone"); err == nil {
		t.Error("Resolve should fail on a non-200 response")
	}
}

package update

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	avail, latest, err := Available(srv.URL, "1.0.0")
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	if !avail || latest != "1.2.3" {
		t.Errorf("Available = (%v, %q), want (true, 1.2.3)", avail, latest)
	}

	avail, _, err = Available(srv.URL, "1.2.3")
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	if avail {
		t.Error("Available should be false when versions match")
	}

	// An empty current version disables the check entirely.
	avail, _, err = Available(srv.URL, "")
	if err != nil || avail {
		t.Errorf("Available with empty current = (%v, %v), want (false, nil)", avail, err)
	}
}

func TestAvailableServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, _, err := Available(srv.URL, "1.0.0"); err == nil {
		t.Fatal("Available should surface server errors")
	}
}

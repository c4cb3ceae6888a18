package rembg

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitted/internal/domain"
)

func TestRemovePostsImageAndReturnsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "raw-image" {
			t.Errorf("body = %q", body)
		}
		_, _ = w.Write([]byte("masked-image"))
	}))
	defer srv.Close()

	client, err := NewClient(Options{URL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	out, err := client.Remove(context.Background(), []byte("raw-image"))
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if string(out) != "masked-image" {
		t.Fatalf("out = %q", out)
	}
}

func TestRemoveSurfacesBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(Options{URL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Remove(context.Background(), []byte("raw")); !errors.Is(err, domain.ErrSynthesis) {
		t.Fatalf("error = %v, want ErrSynthesis", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error when url is missing")
	}
}

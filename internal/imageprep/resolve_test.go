package imageprep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fitted/internal/domain"
)

// chdir mirrors t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}

func TestResolveLocalPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outfit.jpg")
	if err := os.WriteFile(path, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := NewResolver(ResolverOptions{BaseURL: "http://localhost:8000"})
	data, err := r.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("data = %q, want %q", data, "jpeg-bytes")
	}
}

func TestResolveBaseURLDisguisedLocalPath(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.MkdirAll("photos", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join("photos", "full_body_ab12.jpg"), []byte("photo"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := NewResolver(ResolverOptions{BaseURL: "http://localhost:8000"})
	data, err := r.Resolve(context.Background(), "http://localhost:8000/photos/full_body_ab12.jpg")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if string(data) != "photo" {
		t.Fatalf("data = %q, want %q", data, "photo")
	}
}

func TestResolveRemoteURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote-bytes"))
	}))
	defer srv.Close()

	r := NewResolver(ResolverOptions{BaseURL: "http://localhost:8000", HTTPClient: srv.Client()})
	data, err := r.Resolve(context.Background(), srv.URL+"/image.png")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if string(data) != "remote-bytes" {
		t.Fatalf("data = %q, want %q", data, "remote-bytes")
	}
}

func TestResolveRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewResolver(ResolverOptions{HTTPClient: srv.Client()})
	_, err := r.Resolve(context.Background(), srv.URL+"/missing.png")
	if !errors.Is(err, domain.ErrImageFetch) {
		t.Fatalf("error = %v, want ErrImageFetch", err)
	}
}

func TestResolveUnreachableHost(t *testing.T) {
	r := NewResolver(ResolverOptions{})
	_, err := r.Resolve(context.Background(), "http://127.0.0.1:1/unreachable.png")
	if !errors.Is(err, domain.ErrImageFetch) {
		t.Fatalf("error = %v, want ErrImageFetch", err)
	}
}

package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateTextSendsPromptAndInlineImages(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"ok":true}`}},
				},
			}},
		})
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	reply, err := client.GenerateText(context.Background(), "describe this", []Image{{Data: []byte("img")}})
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if reply != `{"ok":true}` {
		t.Fatalf("reply = %q", reply)
	}
	if len(captured.Contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(captured.Contents))
	}
	parts := captured.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want text + inline image", len(parts))
	}
	if parts[0].Text != "describe this" {
		t.Fatalf("text part = %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "image/jpeg" {
		t.Fatalf("inline part = %#v", parts[1])
	}
}

func TestGenerateTextSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"invalid argument"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = client.GenerateText(context.Background(), "describe this", nil)
	if err == nil || !strings.Contains(err.Error(), "invalid argument") {
		t.Fatalf("error = %v, want gemini message surfaced", err)
	}
}

func TestGenerateTextRejectsEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	if _, err := client.GenerateText(context.Background(), "describe this", nil); err == nil {
		t.Fatal("expected error for empty candidate list")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}

package photos

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Categories are the reference photo slots a user can fill. Each slot holds
// at most one photo; uploading again replaces it.
var Categories = []string{"face", "upper_body", "full_body"}

// Store keeps one reference photo per category on the local filesystem,
// under the directory the HTTP layer serves as static files.
type Store struct {
	mu      sync.Mutex
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("photos: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("photos: ensure directory: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// ValidCategory reports whether the category names a known photo slot.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Save stores the uploaded photo under its category, replacing any previous
// photo in that slot, and returns its public URL.
func (s *Store) Save(category, filename string, r io.Reader) (string, error) {
	if !ValidCategory(category) {
		return "", fmt.Errorf("photos: unknown category %q", category)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s_%s%s", category, shortID(8), ext)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeCategoryLocked(category); err != nil {
		return "", err
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("photos: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("photos: write file: %w", err)
	}
	return s.baseURL + "/photos/" + name, nil
}

// List returns the public URL of each category's photo, with an empty
// string for slots that are not filled.
func (s *Store) List() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(Categories))
	for _, c := range Categories {
		out[c] = ""
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("photos: read directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, c := range Categories {
			if strings.HasPrefix(e.Name(), c+"_") {
				out[c] = s.baseURL + "/photos/" + e.Name()
			}
		}
	}
	return out, nil
}

func (s *Store) removeCategoryLocked(category string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("photos: read directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), category+"_") {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
				return fmt.Errorf("photos: replace previous photo: %w", err)
			}
		}
	}
	return nil
}

func shortID(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}

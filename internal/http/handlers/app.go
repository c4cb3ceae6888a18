package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"fitted/internal/domain"
	"fitted/internal/infra"
	"fitted/internal/photos"
)

// TryOn is the slice of the orchestrator the HTTP layer needs.
type TryOn interface {
	Start(ctx context.Context, outfitRef, userPhotoRef string) (*domain.Session, error)
	Refine(ctx context.Context, sessionID, message, newImageRef string) (*domain.Session, error)
}

type App struct {
	TryOn  TryOn
	Photos *photos.Store
	Logger *infra.Logger
}

func NewApp(tryOn TryOn, photoStore *photos.Store, logger *infra.Logger) *App {
	return &App{TryOn: tryOn, Photos: photoStore, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{
		"status":  "error",
		"error":   errCode,
		"message": message,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fitted/internal/domain"
)

type tryOnRequest struct {
	ImageURL string `json:"image_url"`
}

type chatRequest struct {
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	NewImageURL string `json:"new_image_url,omitempty"`
}

type sessionResponse struct {
	Status        string                   `json:"status"`
	SessionID     string                   `json:"session_id"`
	TryonImageURL string                   `json:"tryon_image_url"`
	Description   domain.OutfitDescription `json:"description"`
	History       []domain.ChatTurn        `json:"history"`
}

func newSessionResponse(sess *domain.Session) sessionResponse {
	history := sess.History
	if history == nil {
		history = []domain.ChatTurn{}
	}
	return sessionResponse{
		Status:        "success",
		SessionID:     sess.ID,
		TryonImageURL: sess.CurrentResultRef,
		Description:   sess.CurrentDescription,
		History:       history,
	}
}

// StartTryOn renders the user wearing the outfit from the given image and
// opens a chat session around the result.
func (a *App) StartTryOn(w http.ResponseWriter, r *http.Request) {
	var req tryOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		a.error(w, http.StatusBadRequest, "invalid_request", "image_url is required")
		return
	}

	userPhotoRef, err := a.referencePhoto()
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: resolving reference photo")
		a.error(w, http.StatusInternalServerError, "internal_error", "could not resolve reference photo")
		return
	}
	if userPhotoRef == "" {
		a.error(w, http.StatusBadRequest, "no_reference_photo", "upload a full_body or upper_body photo first")
		return
	}

	sess, err := a.TryOn.Start(r.Context(), req.ImageURL, userPhotoRef)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: try-on failed")
		a.error(w, http.StatusBadGateway, "generation_failed", "could not generate the try-on image")
		return
	}
	a.json(w, http.StatusOK, newSessionResponse(sess))
}

// Chat applies one refinement message to an existing session.
func (a *App) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.Message) == "" {
		a.error(w, http.StatusBadRequest, "invalid_request", "session_id and message are required")
		return
	}

	sess, err := a.TryOn.Refine(r.Context(), req.SessionID, req.Message, req.NewImageURL)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			a.error(w, http.StatusNotFound, "session_not_found", "session expired or does not exist")
			return
		}
		a.Logger.Error().Err(err).Str("session_id", req.SessionID).Msg("handlers: chat refinement failed")
		a.error(w, http.StatusBadGateway, "generation_failed", "could not apply the requested change")
		return
	}
	a.json(w, http.StatusOK, newSessionResponse(sess))
}

// referencePhoto prefers the full body slot and falls back to upper body.
func (a *App) referencePhoto() (string, error) {
	urls, err := a.Photos.List()
	if err != nil {
		return "", err
	}
	if url := urls["full_body"]; url != "" {
		return url, nil
	}
	return urls["upper_body"], nil
}

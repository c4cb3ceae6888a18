package handlers

import (
	"net/http"
)

const maxUploadBytes = 32 << 20

// UploadPhoto stores a reference photo under the slot named by the
// photo_type query parameter, replacing any previous photo in that slot.
func (a *App) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	photoType := r.URL.Query().Get("photo_type")
	if photoType == "" {
		photoType = r.FormValue("photo_type")
	}
	if photoType == "" {
		a.error(w, http.StatusBadRequest, "missing_photo_type", "photo_type query parameter is required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_upload", "expected multipart form data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "missing_file", "file field is required")
		return
	}
	defer file.Close()

	url, err := a.Photos.Save(photoType, header.Filename, file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_photo_type", err.Error())
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"status":     "uploaded",
		"photo_type": photoType,
		"photo_url":  url,
	})
}

// UserPhotos lists the photo URL of every slot, empty when unfilled.
func (a *App) UserPhotos(w http.ResponseWriter, r *http.Request) {
	urls, err := a.Photos.List()
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: listing photos")
		a.error(w, http.StatusInternalServerError, "internal_error", "could not list photos")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"status": "success",
		"photos": urls,
	})
}

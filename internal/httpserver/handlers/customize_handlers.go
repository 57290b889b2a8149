package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"customizer-console/internal/httpserver/response"
	"customizer-console/internal/models"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

const maxUploadMemory = 32 << 20

// GetDesign returns the full design document including its customizable
// data entries.
func GetDesign(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		design, err := api.GetLayerDesign(r.Context(), session.Token(r.Context()), id)
		if err != nil {
			lg.Errorw("design fetch failed", "id", id, "error", err)
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}
		ok(w, r, design)
	}
}

// SaveCustomizeData adds or edits one customizable-data entry. The image
// comes either as a fresh file or as the URL of an already stored one; a
// fresh file takes precedence and is uploaded first, and its durable URL
// is what lands in the entry. The multipart spool is removed once the
// request finishes, mirroring the preview handle the shell releases.
func SaveCustomizeData(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		title := r.FormValue("title")
		shortDescription := r.FormValue("shortDescription")
		existingImage := r.FormValue("existingImage")
		if title == "" {
			renderFieldError(w, r, "Title is required")
			return
		}
		if shortDescription == "" {
			renderFieldError(w, r, "Short description is required")
			return
		}

		file, header, err := r.FormFile("image")
		hasFile := err == nil
		if hasFile {
			defer file.Close()
			// A newly chosen file replaces any kept reference.
			existingImage = ""
		}
		if !hasFile && existingImage == "" {
			renderFieldError(w, r, "Image is required")
			return
		}

		token := session.Token(r.Context())
		design, err := api.GetLayerDesign(r.Context(), token, id)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}

		// A bad index is rejected before the upload so a doomed request
		// never leaves an orphaned file in the durable store.
		editIndex := -1
		if idx := r.FormValue("index"); idx != "" {
			i, convErr := strconv.Atoi(idx)
			if convErr != nil || i < 0 || i >= len(design.CustomizableData) {
				renderFieldError(w, r, "invalid entry index")
				return
			}
			editIndex = i
		}

		imageURL := existingImage
		if hasFile {
			imageURL, err = api.Upload(r.Context(), token, header.Filename, file)
			if err != nil {
				lg.Errorw("image upload failed", "design", id, "error", err)
				upstreamError(w, r, err, "Failed to save customizable data")
				return
			}
		}

		entry := models.CustomizableData{
			Title:            title,
			ShortDescription: shortDescription,
			Files:            []string{imageURL},
		}
		updated := append([]models.CustomizableData(nil), design.CustomizableData...)
		if editIndex >= 0 {
			updated[editIndex] = entry
		} else {
			updated = append(updated, entry)
		}
		design.CustomizableData = updated

		if err := api.UpdateLayerDesign(r.Context(), token, id, design); err != nil {
			lg.Errorw("customizable data save failed", "design", id, "error", err)
			upstreamError(w, r, err, "Failed to save customizable data")
			return
		}
		fresh, err := api.GetLayerDesign(r.Context(), token, id)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}
		ok(w, r, fresh)
	}
}

// DeleteCustomizeData splices one entry out and writes the whole document
// back, then refetches it.
func DeleteCustomizeData(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		idx, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil || idx < 0 {
			renderFieldError(w, r, "invalid entry index")
			return
		}
		token := session.Token(r.Context())
		design, err := api.GetLayerDesign(r.Context(), token, id)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}
		if idx >= len(design.CustomizableData) {
			renderFieldError(w, r, "invalid entry index")
			return
		}
		updated := append([]models.CustomizableData(nil), design.CustomizableData...)
		updated = append(updated[:idx], updated[idx+1:]...)
		design.CustomizableData = updated

		if err := api.UpdateLayerDesign(r.Context(), token, id, design); err != nil {
			lg.Errorw("customizable data delete failed", "design", id, "error", err)
			upstreamError(w, r, err, "Failed to delete customizable data")
			return
		}
		fresh, err := api.GetLayerDesign(r.Context(), token, id)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}
		ok(w, r, fresh)
	}
}

func renderFieldError(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(msg))
}

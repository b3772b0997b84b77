package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"pawhaven/internal/app/db"
	"pawhaven/internal/app/pet"
	"pawhaven/internal/pkg/errs"
	"pawhaven/internal/pkg/randx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

// PresignUploadInput defines the JSON input structure for generating an
// upload URL for a pet photo.
type PresignUploadInput struct {
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
}

// HandlePhotoPresignUpload generates a time-limited, pre-signed URL for
// uploading a pet photo. Admin only; the returned key is stored on the
// listing via the regular update endpoint.
func HandlePhotoPresignUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		var input PresignUploadInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := pet.ValidatePhotoSize(input.FileSize); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if err := pet.ValidatePhotoType(input.FileName, input.MimeType); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		fileExt := strings.ToLower(filepath.Ext(input.FileName))
		photoKey := fmt.Sprintf("pets/%s%s", randx.PhotoKey(), fileExt)

		url, err := deps.Photos.PresignUpload(
			r.Context(),
			photoKey,
			input.MimeType,
			input.FileSize,
			pet.PresignedURLDuration,
		)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		data := map[string]any{
			"presignedUrl": url,
			"photoKey":     photoKey,
			"fileName":     input.FileName,
		}
		resp.RespondSuccess(w, r, data)
	}
}

// HandlePhotoDownload redirects to a time-limited, pre-signed URL for the
// photo of the listing in the path. Publicly readable, like the listing.
func HandlePhotoDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(chi.URLParam(r, "id"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		p, err := deps.Pets.Get(r.Context(), id)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if p.PhotoKey == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrPetNotFound))
			return
		}

		url, err := deps.Photos.PresignDownload(r.Context(), p.PhotoKey, pet.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}

package pet

import (
	"path/filepath"
	"strings"
	"time"

	"pawhaven/internal/pkg/errs"
)

const (
	// MaxPhotoSizeMB is the maximum allowed photo size in megabytes.
	MaxPhotoSizeMB = 5

	// MaxPhotoSize is the maximum allowed photo size in bytes.
	MaxPhotoSize = MaxPhotoSizeMB * 1024 * 1024

	// PresignedURLDuration is the fixed validity window for photo upload and
	// download URLs.
	PresignedURLDuration = 5 * time.Minute
)

// AllowedMIMETypes defines the set of permitted MIME types for pet photos.
var AllowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ExtToMIME maps photo file extensions to their corresponding MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidatePhotoSize checks that the photo size is positive and within limits.
func ValidatePhotoSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxPhotoSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	return nil
}

// ValidatePhotoType checks that the file name and MIME type agree and both
// name an allowed image format.
func ValidatePhotoType(fileName string, mimeType string) *errs.CustomError {
	lowerMimeType := strings.ToLower(mimeType)

	if _, ok := AllowedMIMETypes[lowerMimeType]; !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || len(ext) < 2 {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	expectedMIME, ok := ExtToMIME[ext]
	if !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	if expectedMIME != lowerMimeType {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}

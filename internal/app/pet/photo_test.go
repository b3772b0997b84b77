package pet

import (
	"testing"

	"pawhaven/internal/pkg/errs"
)

func TestValidatePhotoSize(t *testing.T) {
	if err := ValidatePhotoSize(1024); err != nil {
		t.Fatalf("valid size rejected: %v", err)
	}
	if err := ValidatePhotoSize(0); err == nil || err.Code != errs.ErrInvalidParams {
		t.Fatalf("zero size: got %v, want ErrInvalidParams", err)
	}
	if err := ValidatePhotoSize(-1); err == nil || err.Code != errs.ErrInvalidParams {
		t.Fatalf("negative size: got %v, want ErrInvalidParams", err)
	}
	if err := ValidatePhotoSize(MaxPhotoSize); err != nil {
		t.Fatalf("size at limit rejected: %v", err)
	}
	if err := ValidatePhotoSize(MaxPhotoSize + 1); err == nil || err.Code != errs.ErrFileSizeTooLarge {
		t.Fatalf("oversized: got %v, want ErrFileSizeTooLarge", err)
	}
}

func TestValidatePhotoType(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		mimeType string
		wantOK   bool
	}{
		{"jpeg", "buddy.jpg", "image/jpeg", true},
		{"jpeg alt ext", "buddy.jpeg", "image/jpeg", true},
		{"png", "whiskers.png", "image/png", true},
		{"webp", "rex.webp", "image/webp", true},
		{"uppercase mime", "buddy.jpg", "IMAGE/JPEG", true},
		{"gif not allowed", "party.gif", "image/gif", false},
		{"mime mismatch", "buddy.jpg", "image/png", false},
		{"no extension", "buddy", "image/jpeg", false},
		{"unknown extension", "buddy.bmp", "image/jpeg", false},
		{"executable", "evil.exe", "application/octet-stream", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePhotoType(tc.fileName, tc.mimeType)
			if tc.wantOK && err != nil {
				t.Fatalf("ValidatePhotoType(%q, %q) = %v, want nil", tc.fileName, tc.mimeType, err)
			}
			if !tc.wantOK && err == nil {
				t.Fatalf("ValidatePhotoType(%q, %q) = nil, want error", tc.fileName, tc.mimeType)
			}
		})
	}
}

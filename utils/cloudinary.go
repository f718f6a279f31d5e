package authUtils

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader wraps the Cloudinary client used for issue photos.
type ImageUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewImageUploader builds an uploader from a CLOUDINARY_URL-style string.
func NewImageUploader(cloudinaryURL string) (*ImageUploader, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is not set")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &ImageUploader{cld: cld, folder: "civicguard/issues"}, nil
}

// Upload pushes a local file to Cloudinary and returns its public HTTPS URL.
// The caller owns the local file and removes it on every exit path.
func (u *ImageUploader) Upload(ctx context.Context, filePath, issueType string) (string, error) {
	publicID := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), issueType)

	resp, err := u.cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}

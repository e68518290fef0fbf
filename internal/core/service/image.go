package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

// uploadImage pushes img to the image host and returns its URL. A nil img
// is not an error and yields an empty URL.
func uploadImage(ctx context.Context, uploader ports.ImageUploader, img *domain.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", nil
	}

	// Trust the bytes, not the client-declared content type.
	detected := http.DetectContentType(img.Data)
	if !strings.HasPrefix(detected, "image/") {
		return "", fmt.Errorf("%w: uploaded file is not an image", domain.ErrInvalidInput)
	}
	img.ContentType = detected

	uploaded, err := uploader.Upload(ctx, *img)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return uploaded.URL, nil
}

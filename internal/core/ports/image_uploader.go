package ports

import (
	"context"

	"github.com/cipco/cms-backend/internal/core/domain"
)

// ImageUploader pushes an image to the hosting service and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, img domain.Image) (*domain.UploadedImage, error)
}

package usecase

import (
	"context"
	"mime"
	"slices"

	"github.com/vasapolrittideah/social-api/shared/storage"
)

// AllowedMediaTypes lists the content types accepted for uploads.
var AllowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
}

// MediaUsecase hands out upload targets for user media.
type MediaUsecase interface {
	CreateUploadURL(ctx context.Context, userID, filename, contentType string) (*storage.Upload, error)
}

type mediaUsecase struct {
	presigner storage.Presigner
}

// NewMediaUsecase creates the media usecase. presigner may be nil when no
// storage is configured.
func NewMediaUsecase(presigner storage.Presigner) MediaUsecase {
	return &mediaUsecase{presigner: presigner}
}

func (u *mediaUsecase) CreateUploadURL(
	ctx context.Context,
	userID, filename, contentType string,
) (*storage.Upload, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !slices.Contains(AllowedMediaTypes, mediaType) {
		return nil, ErrUnsupportedMediaType.
			WithParams(contentType).
			WithMetadata(map[string]any{"allowed": AllowedMediaTypes})
	}

	if u.presigner == nil {
		return nil, ErrStorageUnavailable
	}

	return u.presigner.PresignUpload(ctx, "users/"+userID, filename, mediaType)
}

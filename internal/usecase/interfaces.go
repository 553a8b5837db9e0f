package usecase

import "context"

// MediaUploader is the hosted media service used for profile images.
type MediaUploader interface {
	// Upload stores an image (base64 data URI) and returns its hosted
	// URL and public id.
	Upload(ctx context.Context, dataURI string) (url string, publicID string, err error)
	Destroy(ctx context.Context, publicID string) error
}

package media

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"skillbarter/pkg/errors"
)

// CloudinaryClient uploads profile images to the hosted media service.
// Images arrive from clients as base64 data URIs and leave as hosted
// secure URLs.
type CloudinaryClient struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryClient(cloudinaryURL, folder string) (*CloudinaryClient, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}

	return &CloudinaryClient{
		cld:    cld,
		folder: folder,
	}, nil
}

func (c *CloudinaryClient) Upload(ctx context.Context, dataURI string) (string, string, error) {
	resp, err := c.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", "", errors.Internal("Failed to upload image", err)
	}

	return resp.SecureURL, resp.PublicID, nil
}

func (c *CloudinaryClient) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return errors.Internal("Failed to delete image", err)
	}

	return nil
}

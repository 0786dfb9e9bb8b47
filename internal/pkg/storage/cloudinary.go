package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores images remotely. Save returns the secure delivery URL,
// which is what gets persisted on the record and rendered by clients.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if folder == "" {
		folder = "yourplaces"
	}

	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Save(ctx context.Context, file multipart.File, name string) (string, error) {
	publicID := strings.TrimSuffix(name, path.Ext(name))

	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       c.folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.SecureURL, nil
}

func (c *Cloudinary) Remove(ctx context.Context, storedPath string) error {
	publicID := c.publicIDFromURL(storedPath)
	if publicID == "" {
		return fmt.Errorf("cannot derive public id from %q", storedPath)
	}

	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// publicIDFromURL recovers "<folder>/<name>" from a delivery URL of the form
// .../upload/v123/<folder>/<name>.<ext>.
func (c *Cloudinary) publicIDFromURL(url string) string {
	idx := strings.Index(url, "/"+c.folder+"/")
	if idx < 0 {
		return ""
	}
	id := url[idx+1:]
	return strings.TrimSuffix(id, path.Ext(id))
}

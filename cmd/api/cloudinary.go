package main

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const maxUploadSize = 10 << 20 // 10 MB

// uploadToCloudinary pushes the file into the products folder and returns the
// HTTPS delivery URL.
func (app *application) uploadToCloudinary(ctx context.Context, file multipart.File, filename string, productID int64) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	publicID := fmt.Sprintf("product_%d_%s_%d", productID, base, time.Now().Unix())

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := app.cld.Upload.Upload(uploadCtx, file, uploader.UploadParams{
		Folder:   "products",
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload: empty secure url")
	}
	return resp.SecureURL, nil
}

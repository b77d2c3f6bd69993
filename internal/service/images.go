package service

import (
	a "bitwise74/shop-api/aws"
	"bitwise74/shop-api/pkg/util"
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const minMultipartSize = 12 << 20

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageEmpty       = errors.New("image is empty")

	allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
)

// ImageStore uploads product images to an S3 compatible bucket and hands
// back the public URL they are served from
type ImageStore struct {
	client    manager.UploadAPIClient
	bucket    string
	publicURL string
}

func NewImageStore(c *a.S3Client, publicURL string) *ImageStore {
	return NewImageStoreWithClient(c.C, aws.ToString(c.Bucket), publicURL)
}

// NewImageStoreWithClient is for clients that aren't a plain *s3.Client,
// such as fakes in tests
func NewImageStoreWithClient(client manager.UploadAPIClient, bucket, publicURL string) *ImageStore {
	return &ImageStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Upload checks that data really is an image and stores it under the
// product's prefix. The content type is sniffed, never taken from the client
func (s *ImageStore) Upload(ctx context.Context, productID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrImageEmpty
	}

	mime := mimetype.Detect(data)
	if !slices.Contains(allowedImageTypes, mime.String()) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mime.String())
	}

	key := fmt.Sprintf("products/%s/%s%s", productID, util.RandStr(10), mime.Extension())

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	uploader := manager.NewUploader(s.client, func(u *manager.Uploader) {
		if len(data) > minMultipartSize {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		}
	})

	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(mime.String()),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3, %w", err)
	}

	zap.L().Debug("Uploaded product image", zap.String("productID", productID), zap.String("key", key))

	return s.publicURL + "/" + key, nil
}

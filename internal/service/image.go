package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxImageSize is the largest recipe image accepted for upload
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds maximum size")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectUploader is the subset of the S3 client used for uploads
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores recipe images in S3
type ImageService struct {
	uploader ObjectUploader
	bucket   string
	baseURL  string
}

// NewImageService creates a new ImageService instance
func NewImageService(uploader ObjectUploader, bucket, publicBaseURL string) *ImageService {
	return &ImageService{
		uploader: uploader,
		bucket:   bucket,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
	}
}

// UploadRecipeImage stores body under recipes/<user>/<uuid><ext> and returns its public URL
func (s *ImageService) UploadRecipeImage(ctx context.Context, userID uuid.UUID, filename, contentType string, size int64, body io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	// S3 user metadata travels as a header and must be ASCII.
	original := url.PathEscape(path.Base(filename))

	key := fmt.Sprintf("recipes/%s/%s%s", userID, uuid.New(), ext)
	_, err := s.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		Metadata:      map[string]string{"original-filename": original},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

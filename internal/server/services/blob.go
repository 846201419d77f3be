package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	sc "github.com/saketh1999/consistency-cal-sub000/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput) error {
		_, err := c.DeleteObject(ctx, in)
		return err
	}
)

// Upload describes a presigned upload slot.
type Upload struct {
	UploadURL  string
	PublicURL  string
	StorageKey string
}

// BlobStore hands out upload URLs and removes stored objects.
type BlobStore interface {
	PresignUpload(ctx context.Context, userID, fileName, contentType string, size int64) (*Upload, error)
	Delete(ctx context.Context, storageKey string) error
}

// BlobService is the S3-backed BlobStore.
type BlobService struct {
	config *sc.Config
	now    func() time.Time
}

var _ BlobStore = (*BlobService)(nil)

func NewBlobService(cfg *sc.Config) *BlobService {
	return &BlobService{config: cfg, now: time.Now}
}

// StorageKey builds a unique object key under the user's prefix, keeping the
// extension of fileName.
func StorageKey(userID, fileName string, d time.Time) string {
	ext := strings.ToLower(path.Ext(path.Base(fileName)))
	return fmt.Sprintf("users/%s/%d/%02d/%02d/%v%s", userID, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

// PublicURL is the address an uploaded object is readable at.
func (s *BlobService) PublicURL(key string) string {
	base := s.config.S3PublicBaseURL
	if base == "" {
		base = strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket
	}
	return strings.TrimRight(base, "/") + "/" + key
}

func (s *BlobService) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// PresignUpload validates the upload and returns a presigned PUT URL. Only
// images are accepted; size must be positive and within MaxUploadBytes.
func (s *BlobService) PresignUpload(ctx context.Context, userID, fileName, contentType string, size int64) (*Upload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("content type %q is not an image: %w", contentType, common.ErrValidation)
	}
	limit := s.config.MaxUploadBytes
	if limit <= 0 {
		limit = common.DefaultMaxUploadBytes
	}
	if size <= 0 || size > limit {
		return nil, fmt.Errorf("size %d outside (0, %d]: %w", size, limit, common.ErrValidation)
	}

	c, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	key := StorageKey(userID, fileName, s.now())
	req, err := presignPutObject(newS3PresignClient(c), ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.S3Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, func(o *s3.PresignOptions) {
		o.Expires = s.config.PresignValidityDuration
	})
	if err != nil {
		return nil, err
	}

	return &Upload{UploadURL: req.URL, PublicURL: s.PublicURL(key), StorageKey: key}, nil
}

// Delete removes the object. An empty key is a no-op: the image was not
// uploaded through us.
func (s *BlobService) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return nil
	}
	c, err := s.client(ctx)
	if err != nil {
		return err
	}
	return deleteObject(c, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(storageKey),
	})
}

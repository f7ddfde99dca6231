// Package storage issues presigned upload URLs for an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds the bucket settings.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ExpiresIn       time.Duration
}

// Upload is a presigned upload target.
type Upload struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Presigner issues presigned upload URLs.
type Presigner interface {
	PresignUpload(ctx context.Context, prefix, filename, contentType string) (*Upload, error)
}

// S3Presigner presigns PUT requests with aws-sdk-go-v2.
type S3Presigner struct {
	client    *s3.PresignClient
	bucket    string
	expiresIn time.Duration
	now       func() time.Time
}

// NewS3Presigner creates a presigner with static credentials. A custom
// Endpoint switches to path-style addressing, as needed by MinIO and R2.
func NewS3Presigner(ctx context.Context, cfg Config) (*S3Presigner, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{
		client:    s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		expiresIn: cfg.ExpiresIn,
		now:       time.Now,
	}, nil
}

func (p *S3Presigner) PresignUpload(ctx context.Context, prefix, filename, contentType string) (*Upload, error) {
	key := ObjectKey(prefix, filename, p.now())

	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiresIn))
	if err != nil {
		return nil, fmt.Errorf("presign put %s: %w", key, err)
	}

	return &Upload{
		Key:       key,
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: p.now().Add(p.expiresIn),
	}, nil
}

// ObjectKey builds prefix/yyyy/mm/dd/<uuid><ext> keeping only the extension
// of the client supplied filename.
func ObjectKey(prefix, filename string, at time.Time) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", strings.Trim(prefix, "/"), at.Year(), at.Month(), at.Day(), uuid.New(), ext)
}

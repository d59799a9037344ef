package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ExportArchive keeps a copy of every generated export in a bucket.
type ExportArchive struct {
	client putter
	bucket string
}

func NewExportArchive(cfg S3Config) *ExportArchive {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &ExportArchive{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

// Key is exports/<owner>/<YYYY>/<MM>/<filename>.
func Key(ownerID uuid.UUID, at time.Time, filename string) string {
	return path.Join("exports", ownerID.String(), at.Format("2006"), at.Format("01"), filename)
}

func (a *ExportArchive) Store(ctx context.Context, ownerID uuid.UUID, filename, contentType string, body []byte) (string, error) {
	key := Key(ownerID, time.Now().UTC(), filename)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}
	return key, nil
}

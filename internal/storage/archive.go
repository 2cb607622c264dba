package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	appconfig "passport-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archive stores generated report files in an S3-compatible bucket so
// month-end exports survive outside the database. A nil Archive is
// valid and skips uploads.
type Archive struct {
	client *s3.Client
	bucket string
}

// NewArchive builds the uploader from config. Returns nil when the
// archive is disabled, callers do not need to branch on that.
func NewArchive(cfg *appconfig.Config) *Archive {
	if !cfg.Archive.Enabled {
		log.Println("[Archive] disabled, reports are served inline only")
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] config failed, uploads disabled: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
	})
	log.Printf("[Archive] uploading reports to bucket %s", cfg.Archive.Bucket)
	return &Archive{client: client, bucket: cfg.Archive.Bucket}
}

// Store uploads a generated report under reports/YYYY/MM/<name>. Upload
// failures are logged and swallowed: the caller already has the bytes
// to serve to the user.
func (a *Archive) Store(ctx context.Context, name, contentType string, data []byte) {
	if a == nil {
		return
	}

	key := fmt.Sprintf("reports/%s/%s", time.Now().Format("2006/01"), name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[Archive] upload of %s failed: %v", key, err)
		return
	}
	log.Printf("[Archive] stored %s (%d bytes)", key, len(data))
}

// Package storage uploads client photos and campaign logos to S3-compatible
// object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config describes the bucket photos are written to.
type Config struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL is prepended to object keys to build the returned URL.
	PublicBaseURL string
	UsePathStyle  bool
}

// Enabled reports whether enough settings are present to upload.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores images under <folder>/<uuid><ext>.
type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	baseURL string
	newKey  func() string
}

// NewS3Uploader loads an AWS config with static credentials and an optional
// custom endpoint (MinIO, R2, Tigris).
func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("storage bucket and credentials must be configured")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3Uploader(client, cfg), nil
}

func newS3Uploader(client putObjectAPI, cfg Config) *S3Uploader {
	base := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if base == "" {
		endpoint := strings.TrimRight(cfg.Endpoint, "/")
		if endpoint == "" {
			endpoint = "https://s3.amazonaws.com"
		}
		base = endpoint + "/" + cfg.Bucket
	}
	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: base,
		newKey:  func() string { return uuid.NewString() },
	}
}

// Upload writes body and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := path.Join(strings.Trim(folder, "/"), u.newKey()+strings.ToLower(path.Ext(filename)))
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return u.baseURL + "/" + key, nil
}

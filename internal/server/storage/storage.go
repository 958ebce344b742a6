// Package storage keeps submission images in an S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/dmitrijs2005/worldcovers/internal/server/config"
)

// PresignExpiry is the lifetime of presigned image URLs.
const PresignExpiry = 15 * time.Minute

// ImageStore uploads images and resolves the URL a reader can fetch them from.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	URL(ctx context.Context, key string) (string, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Store is an ImageStore over one bucket. When a public base URL is
// configured, URL returns "<base>/<bucket>/<key>"; otherwise it presigns a GET.
type S3Store struct {
	client        *s3.Client
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// NewS3Store builds the S3 client from the server config. MinIO and other
// S3-compatible endpoints are addressed path-style.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading s3 config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		presign:       newS3PresignClient(client),
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("error uploading %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(ctx context.Context, key string) (string, error) {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + path.Join(url.PathEscape(s.bucket), escapeKey(key)), nil
	}

	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("error presigning %s: %w", key, err)
	}
	return req.URL, nil
}

// ObjectKey returns "<userID>/<random uuid>.<ext>" where ext is taken from
// filename and lowercased. A filename without extension yields no suffix.
func ObjectKey(userID, filename string) string {
	key := userID + "/" + uuid.NewString()
	if ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")); ext != "" {
		key += "." + ext
	}
	return key
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

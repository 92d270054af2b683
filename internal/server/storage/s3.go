// Package storage turns product image keys into short-lived URLs served
// straight from the S3-compatible bucket (MinIO in development).
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/truekicks/internal/server/config"
)

// ImageURLResolver maps a stored image reference to a URL a client can fetch.
type ImageURLResolver interface {
	ImageURL(ctx context.Context, ref string) (string, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type S3Presigner struct {
	client *s3.PresignClient
	bucket string
	expiry time.Duration
}

// NewS3Presigner builds a presign client from static credentials. Signing is
// local, so no request reaches the bucket here.
func NewS3Presigner(ctx context.Context, c *sc.Config) (*S3Presigner, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Presigner{
		client: s3.NewPresignClient(client),
		bucket: c.S3Bucket,
		expiry: c.ImageURLValidityDuration,
	}, nil
}

// IsAbsoluteURL reports whether ref already points somewhere fetchable.
func IsAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ImageURL returns ref unchanged when it is empty or already an http(s) URL,
// otherwise a presigned GET URL for the object key ref.
func (p *S3Presigner) ImageURL(ctx context.Context, ref string) (string, error) {
	if ref == "" || IsAbsoluteURL(ref) {
		return ref, nil
	}

	key := strings.TrimPrefix(ref, "/")
	req, err := presignGetObject(p.client, ctx, &s3.GetObjectInput{
		Bucket: &p.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Passthrough leaves every reference as is. Used when no bucket is configured.
type Passthrough struct{}

func (Passthrough) ImageURL(_ context.Context, ref string) (string, error) {
	return ref, nil
}

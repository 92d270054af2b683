package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/dmitrijs2005/truekicks/internal/server/config"
)

func testConfig() *sc.Config {
	c := &sc.Config{}
	c.LoadDefaults()
	return c
}

func TestImageURL_PresignsObjectKeys(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), testConfig())
	require.NoError(t, err)

	u, err := p.ImageURL(context.Background(), "sneakers/dunk-low-panda.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(u, "http://127.0.0.1:9000/"), u)
	assert.Contains(t, u, "products/sneakers/dunk-low-panda.jpg?")
	assert.Contains(t, u, "X-Amz-Signature=")
	assert.Contains(t, u, "X-Amz-Expires=3600")
}

func TestImageURL_KeepsAbsoluteAndEmpty(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), testConfig())
	require.NoError(t, err)

	for _, ref := range []string{"", "https://cdn.example.com/a.jpg", "http://x/y.png"} {
		got, err := p.ImageURL(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	}
}

func TestImageURL_PresignError(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), testConfig())
	require.NoError(t, err)

	orig := presignGetObject
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "a.jpg", *in.Key)
		return nil, errors.New("sign-fail")
	}
	defer func() { presignGetObject = orig }()

	_, err = p.ImageURL(context.Background(), "/a.jpg")
	require.EqualError(t, err, "sign-fail")
}

func TestNewS3Presigner_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	defer func() { loadDefaultAWSConfig = orig }()

	_, err := NewS3Presigner(context.Background(), testConfig())
	require.EqualError(t, err, "load-fail")
}

func TestNewS3Presigner_UsesConfiguredExpiry(t *testing.T) {
	c := testConfig()
	c.ImageURLValidityDuration = 5 * time.Minute
	p, err := NewS3Presigner(context.Background(), c)
	require.NoError(t, err)

	u, err := p.ImageURL(context.Background(), "k.jpg")
	require.NoError(t, err)
	assert.Contains(t, u, "X-Amz-Expires=300")
}

func TestPassthrough(t *testing.T) {
	got, err := Passthrough{}.ImageURL(context.Background(), "sneakers/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "sneakers/a.jpg", got)
}

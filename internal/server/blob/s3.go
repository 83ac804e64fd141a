package blob

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/lifelike-app/backend/internal/server/config"
)

// Seams for tests: the AWS config loader and client constructor are
// package-level variables so unit tests can substitute a stub client.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type s3Client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store stores objects in an S3-compatible backend (MinIO in development).
type S3Store struct {
	bucket       string
	region       string
	baseEndpoint string
	rootUser     string
	rootPassword string
}

func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		baseEndpoint: cfg.S3BaseEndpoint,
		rootUser:     cfg.S3RootUser,
		rootPassword: cfg.S3RootPassword,
	}
}

func (s *S3Store) getClient(ctx context.Context) (s3Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.rootUser,     // MINIO_ROOT_USER
			s.rootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.baseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Upload writes the payload and returns the object URL built from the base
// endpoint, bucket, and key.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return s.objectURL(key), nil
}

func (s *S3Store) objectURL(key string) string {
	base := strings.TrimRight(s.baseEndpoint, "/")
	return base + "/" + s.bucket + "/" + key
}

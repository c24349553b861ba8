package delivery

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archiver keeps a copy of rendered reports and returns their location.
type Archiver interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ObjectPutter is the subset of the S3 API used by the archiver.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Settings struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

type s3Archiver struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Archiver builds an archiver from the default AWS credential chain.
// A custom endpoint switches to path-style addressing for S3 compatible stores.
func NewS3Archiver(ctx context.Context, settings S3Settings) (Archiver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewArchiver(client, settings.Bucket, settings.Prefix), nil
}

func NewArchiver(client ObjectPutter, bucket, prefix string) Archiver {
	return &s3Archiver{client: client, bucket: bucket, prefix: prefix}
}

func (a *s3Archiver) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	objectKey := path.Join(a.prefix, key)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, objectKey), nil
}

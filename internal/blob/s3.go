package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps blobs in one S3 bucket, with the logical bucket name as a
// key prefix: {bucket}/{name}. Objects are expected to be publicly
// readable; PublicURL derives from the configured base URL (a CDN or the
// bucket website endpoint).
type S3Store struct {
	client    *s3.Client
	s3Bucket  string
	publicURL string
}

// NewS3Store loads AWS configuration from the environment, the way the
// SDK's default chain resolves credentials and region.
func NewS3Store(ctx context.Context, s3Bucket, publicURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Store{
		client:    s3.NewFromConfig(cfg),
		s3Bucket:  s3Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, bucket, name string, contentType string, body io.Reader) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	key := bucket + "/" + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.s3Bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3Store) PublicURL(bucket, path string) (string, error) {
	if err := validName(path); err != nil {
		return "", err
	}
	return s.publicURL + "/" + bucket + "/" + path, nil
}

func (s *S3Store) Delete(ctx context.Context, bucket, path string) error {
	if err := validName(path); err != nil {
		return err
	}
	key := bucket + "/" + path
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

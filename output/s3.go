package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single PutObject call.
const UploadTimeout = 30 * time.Second

// S3Config describes an S3-compatible bucket.
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string

	// Prefix is prepended to every object key.
	Prefix string
	// ACL is the canned ACL for uploaded objects, e.g. "public-read".
	ACL string
}

// S3Sink uploads to a bucket.
type S3Sink struct {
	client s3iface.S3API
	bucket string
	prefix string
	acl    string
	logger *slog.Logger
}

func NewS3Sink(cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return newS3Sink(s3.New(sess), cfg), nil
}

func newS3Sink(client s3iface.S3API, cfg S3Config) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		acl:    cfg.ACL,
		logger: slog.Default(),
	}
}

// Key returns the object key name is stored under.
func (s *S3Sink) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Sink) Put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := s.Key(name)
	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(name)),
	}
	if s.acl != "" {
		input.ACL = aws.String(s.acl)
	}

	start := time.Now()
	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Info("uploaded", "bucket", s.bucket, "key", key, "bytes", size, "elapsed", time.Since(start))
	return nil
}

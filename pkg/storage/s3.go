package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of the S3 client used by S3Storage.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Storage implements Storage using S3-compatible object storage.
type S3Storage struct {
	client s3API
	keys   *KeyGenerator
	cfg    Config
}

// New creates a new S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return NewWithClient(s3.New(s3.Options{}, opts...), cfg), nil
}

// NewWithClient creates an S3Storage around an existing client.
// The configuration is not validated.
func NewWithClient(client s3API, cfg Config) *S3Storage {
	cfg.applyDefaults()
	return &S3Storage{
		client: client,
		keys:   NewKeyGenerator(),
		cfg:    cfg,
	}
}

// Put uploads data from a reader to S3.
// The body is buffered in memory because PutObject needs a known length.
func (s *S3Storage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := buildPutOptions(opts)

	if len(o.validationRules) > 0 && o.contentType != "" {
		if err := ValidateReader(size, o.contentType, o.validationRules...); err != nil {
			return nil, err
		}
	}

	if limit := o.sizeLimit(); limit >= 0 {
		r = LimitReader(r, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	contentType := o.contentType
	if contentType == "" {
		contentType = detectMIME(data)
		if len(o.validationRules) > 0 {
			if err := ValidateReader(int64(len(data)), contentType, o.validationRules...); err != nil {
				return nil, err
			}
		}
	}

	key := o.key
	if key == "" {
		key = s.keys.Generate("file" + ExtFromMIME(contentType))
	}
	key = s.objectKey(o.prefix, key)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

// Get retrieves a file from S3.
func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}

	return output.Body, nil
}

// Delete removes a file from S3.
// S3 does not report missing keys on delete, so removing an absent key succeeds.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}

	return nil
}

// Healthcheck verifies that the bucket is reachable.
func (s *S3Storage) Healthcheck(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
	})
	if err != nil {
		return wrapS3Error(err, ErrAccessDenied)
	}
	return nil
}

// objectKey joins the configured prefix, the per-call prefix and the key.
func (s *S3Storage) objectKey(prefix, key string) string {
	var parts []string
	for _, p := range []string{s.cfg.Prefix, prefix, key} {
		if p = strings.Trim(p, "/ "); p != "" {
			parts = append(parts, p)
		}
	}
	return path.Join(parts...)
}

// Ensure S3Storage implements Storage.
var _ Storage = (*S3Storage)(nil)

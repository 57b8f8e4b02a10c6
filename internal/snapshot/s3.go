package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"catalog-sync/internal/shopify"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectStore is the subset of the S3 API the archive uses.
type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Archive implements Archive on an S3 bucket.
type s3Archive struct {
	client objectStore
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Archive creates an archive storing snapshots in bucket under prefix.
// Credentials come from the default AWS configuration chain.
func NewS3Archive(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Archive, error) {
	logger = logger.With().Str("component", "s3-archive").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 archive initialised")

	return newS3Archive(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

func newS3Archive(client objectStore, bucket, prefix string, logger zerolog.Logger) *s3Archive {
	return &s3Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// objectKey resolves key to a full object key. Keys that already carry the
// prefix, or are s3:// URLs for this bucket, are used as given.
func (a *s3Archive) objectKey(key string) string {
	key = strings.TrimPrefix(key, "s3://"+a.bucket+"/")
	if a.prefix != "" && strings.HasPrefix(key, a.prefix) {
		return key
	}
	return a.prefix + key
}

// Save uploads the snapshot and returns its s3:// location.
func (a *s3Archive) Save(ctx context.Context, key string, products []shopify.Product) (string, error) {
	objectKey := a.objectKey(key)

	var buf bytes.Buffer
	if err := Encode(&buf, products); err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("bucket", a.bucket).
			Str("key", objectKey).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", a.bucket, objectKey, err)
	}

	location := fmt.Sprintf("s3://%s/%s", a.bucket, objectKey)
	a.logger.Info().
		Str("location", location).
		Int("products", len(products)).
		Msg("snapshot uploaded")

	return location, nil
}

// Load downloads and decodes a snapshot.
func (a *s3Archive) Load(ctx context.Context, key string) ([]shopify.Product, error) {
	objectKey := a.objectKey(key)

	result, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		a.logger.Error().
			Err(err).
			Str("bucket", a.bucket).
			Str("key", objectKey).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", a.bucket, objectKey, err)
	}
	defer result.Body.Close()

	products, err := Decode(ctx, result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 snapshot %s: %w", objectKey, err)
	}

	a.logger.Info().
		Str("bucket", a.bucket).
		Str("key", objectKey).
		Int("products", len(products)).
		Msg("snapshot downloaded")

	return products, nil
}

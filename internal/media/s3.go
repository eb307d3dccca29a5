package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3API is the narrow slice of the S3 client the host needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures an S3Host. Empty credentials fall back to the default AWS chain.
type S3Options struct {
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	PublicBaseURL string
}

// S3Host stores media in an S3 (or S3-compatible) bucket.
type S3Host struct {
	client  s3API
	bucket  string
	baseURL string
}

// NewS3Host loads AWS configuration and builds the client.
func NewS3Host(ctx context.Context, opts S3Options) (*S3Host, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Host(client, opts), nil
}

func newS3Host(client s3API, opts S3Options) *S3Host {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
	return &S3Host{client: client, bucket: opts.Bucket, baseURL: baseURL}
}

// Upload puts a data URI payload under folder/<date>-<uuid><ext>.
func (h *S3Host) Upload(ctx context.Context, payload, folder string) (Asset, error) {
	decoded, err := decodeImagePayload(payload)
	if err != nil {
		return Asset{}, err
	}

	key := path.Join(sanitizeFolder(folder),
		fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), decoded.Extension()))

	_, err = h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(h.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(decoded.Data),
		ContentType:  aws.String(decoded.MIMEType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return Asset{URL: h.baseURL + "/" + key, PublicID: key}, nil
}

// Delete removes the object keyed by publicID.
func (h *S3Host) Delete(ctx context.Context, publicID string) error {
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", publicID, err)
	}
	return nil
}

// PublicIDFromURL returns the object key for URLs under the public base URL.
func (h *S3Host) PublicIDFromURL(rawURL string) (string, bool) {
	trimmed := strings.TrimSpace(rawURL)
	prefix := h.baseURL + "/"
	if !strings.HasPrefix(trimmed, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(trimmed, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return "", false
	}
	return key, true
}

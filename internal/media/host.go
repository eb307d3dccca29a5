package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/leadersite/internal/config"
)

var (
	// ErrUnsupportedPayload is returned when a host cannot ingest the given payload shape.
	ErrUnsupportedPayload = errors.New("unsupported media payload")
	// ErrEmptyPayload is returned for blank payloads.
	ErrEmptyPayload = errors.New("media payload is empty")
)

// Asset is a stored remote file.
type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Host stores and removes media on a remote host.
type Host interface {
	// Upload stores payload (a data URI, or a remote URL where the host supports it) under folder.
	Upload(ctx context.Context, payload, folder string) (Asset, error)
	// Delete removes the asset identified by publicID.
	Delete(ctx context.Context, publicID string) error
	// PublicIDFromURL recovers the asset id from a URL this host produced.
	PublicIDFromURL(rawURL string) (string, bool)
}

// NewFromConfig builds the host selected by MEDIA_PROVIDER.
func NewFromConfig(ctx context.Context, cfg config.MediaConfig) (Host, error) {
	switch cfg.Provider {
	case "cloudinary":
		return NewCloudinaryHost(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "s3":
		return NewS3Host(ctx, S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	case "local", "":
		return NewLocalHost(cfg.UploadDir, cfg.UploadURLPath)
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
	}
}

// IsRemoteURL reports whether value already points at an http(s) resource.
func IsRemoteURL(value string) bool {
	trimmed := strings.TrimSpace(value)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	parsed, err := url.Parse(trimmed)
	return err == nil && parsed.Host != ""
}

package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cloudinaryVersionSegment = regexp.MustCompile(`^v\d+$`)

type cloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryHost stores media on Cloudinary. It accepts data URIs and remote URLs.
type CloudinaryHost struct {
	api       cloudinaryUploader
	cloudName string
}

// NewCloudinaryHost authenticates against the given cloud.
func NewCloudinaryHost(cloudName, apiKey, apiSecret string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryHost{api: &cld.Upload, cloudName: cloudName}, nil
}

// Upload sends payload to Cloudinary and returns the secure URL.
func (h *CloudinaryHost) Upload(ctx context.Context, payload, folder string) (Asset, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return Asset{}, ErrEmptyPayload
	}
	if !IsDataURI(payload) && !IsRemoteURL(payload) {
		return Asset{}, fmt.Errorf("%w: expected a data URI or URL", ErrUnsupportedPayload)
	}

	result, err := h.api.Upload(ctx, payload, uploader.UploadParams{Folder: folder})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if result == nil {
		return Asset{}, errors.New("cloudinary upload: empty response")
	}
	if result.Error.Message != "" {
		return Asset{}, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	return Asset{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Delete destroys the asset. Cloudinary reports "not found" as a result, not an error;
// it is surfaced as an error so callers can log it.
func (h *CloudinaryHost) Delete(ctx context.Context, publicID string) error {
	result, err := h.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if result == nil {
		return errors.New("cloudinary destroy: empty response")
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", result.Error.Message)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, result.Result)
	}
	return nil
}

// PublicIDFromURL parses https://res.cloudinary.com/<cloud>/image/upload/[<transforms>/][v<n>/]<id>.<ext>.
func (h *CloudinaryHost) PublicIDFromURL(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !strings.EqualFold(parsed.Hostname(), "res.cloudinary.com") {
		return "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 4 || (h.cloudName != "" && segments[0] != h.cloudName) {
		return "", false
	}

	uploadIdx := -1
	for i, segment := range segments {
		if segment == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx+1 >= len(segments) {
		return "", false
	}

	rest := segments[uploadIdx+1:]
	for i, segment := range rest {
		if cloudinaryVersionSegment.MatchString(segment) {
			rest = rest[i+1:]
			break
		}
	}
	if len(rest) == 0 {
		return "", false
	}

	id := strings.Join(rest, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	if id == "" {
		return "", false
	}
	return id, true
}

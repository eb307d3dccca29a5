package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/url"
	"strings"

	_ "golang.org/x/image/webp"
)

// ErrInvalidDataURI is returned when a payload is not a well-formed data URI.
var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI is a decoded data: payload.
type DataURI struct {
	MIMEType string
	Data     []byte
}

// IsDataURI reports whether value looks like a data: payload.
func IsDataURI(value string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), "data:")
}

// DecodeDataURI parses data:[<mime>][;base64],<payload>.
func DecodeDataURI(raw string) (DataURI, error) {
	trimmed := strings.TrimSpace(raw)
	if !IsDataURI(trimmed) {
		return DataURI{}, ErrInvalidDataURI
	}

	header, payload, found := strings.Cut(trimmed[len("data:"):], ",")
	if !found {
		return DataURI{}, ErrInvalidDataURI
	}

	params := strings.Split(header, ";")
	mimeType := strings.ToLower(strings.TrimSpace(params[0]))
	if mimeType == "" {
		mimeType = "text/plain"
	}

	isBase64 := false
	for _, param := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(param), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return DataURI{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
			}
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return DataURI{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = []byte(unescaped)
	}

	if len(data) == 0 {
		return DataURI{}, ErrEmptyPayload
	}
	return DataURI{MIMEType: mimeType, Data: data}, nil
}

// IsImage reports whether the declared type is an image.
func (d DataURI) IsImage() bool {
	return strings.HasPrefix(d.MIMEType, "image/")
}

// Extension returns a file extension for the declared type, including the dot.
func (d DataURI) Extension() string {
	switch d.MIMEType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	}
	if exts, err := mime.ExtensionsByType(d.MIMEType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// ValidateImage checks raster payloads actually decode as the declared kind of image.
// SVG is text and is accepted as declared.
func (d DataURI) ValidateImage() error {
	if !d.IsImage() {
		return fmt.Errorf("%w: %s is not an image", ErrUnsupportedPayload, d.MIMEType)
	}
	if d.MIMEType == "image/svg+xml" {
		return nil
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(d.Data)); err != nil {
		return fmt.Errorf("%w: undecodable image: %v", ErrUnsupportedPayload, err)
	}
	return nil
}

// decodeImagePayload is shared by hosts that only ingest data URIs.
func decodeImagePayload(payload string) (DataURI, error) {
	if strings.TrimSpace(payload) == "" {
		return DataURI{}, ErrEmptyPayload
	}
	if !IsDataURI(payload) {
		return DataURI{}, fmt.Errorf("%w: expected a data URI", ErrUnsupportedPayload)
	}
	decoded, err := DecodeDataURI(payload)
	if err != nil {
		return DataURI{}, err
	}
	if err := decoded.ValidateImage(); err != nil {
		return DataURI{}, err
	}
	return decoded, nil
}

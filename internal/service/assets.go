package service

import (
	"context"
	"path"
	"strings"

	"github.com/leadersite/internal/media"
)

// assetManager handles the primary image of flat documents, which store only the URL.
type assetManager struct {
	host   media.Host
	folder string
}

func newAssetManager(host media.Host, baseFolder, resource string) assetManager {
	return assetManager{host: host, folder: path.Join(baseFolder, resource)}
}

// store uploads payload and returns the hosted URL. URLs already produced by the host
// are returned unchanged.
func (m assetManager) store(ctx context.Context, payload string) (string, error) {
	trimmed := strings.TrimSpace(payload)
	if m.owns(trimmed) {
		return trimmed, nil
	}

	asset, err := m.host.Upload(ctx, trimmed, m.folder)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return asset.URL, nil
}

// replace stores next when it differs from current. The returned release func deletes
// the superseded asset best-effort and must be called only after the document is saved.
func (m assetManager) replace(ctx context.Context, current, next string) (string, func(), error) {
	next = strings.TrimSpace(next)
	if next == "" || next == current {
		return current, func() {}, nil
	}

	stored, err := m.store(ctx, next)
	if err != nil {
		return "", nil, err
	}
	return stored, func() { m.release(ctx, current) }, nil
}

// owns reports whether value is a URL the host already serves.
func (m assetManager) owns(value string) bool {
	if value == "" || media.IsDataURI(value) {
		return false
	}
	_, ok := m.host.PublicIDFromURL(value)
	return ok
}

// release deletes hosted assets best-effort.
func (m assetManager) release(ctx context.Context, urls ...string) {
	media.CleanupURLs(ctx, m.host, urls...)
}

// resolveImages turns a mix of stored assets and raw payloads into stored assets,
// uploading the raw ones concurrently.
func (m assetManager) resolveImages(ctx context.Context, inputs []ImageInput) ([]media.Asset, error) {
	resolved := make([]media.Asset, len(inputs))
	var payloads []string
	var positions []int

	for i, input := range inputs {
		if input.isStored() {
			resolved[i] = media.Asset{URL: strings.TrimSpace(input.URL), PublicID: strings.TrimSpace(input.PublicID)}
			continue
		}
		payload := input.payload()
		if payload == "" {
			return nil, newValidationError("image %d is empty", i+1)
		}
		if m.owns(payload) {
			id, _ := m.host.PublicIDFromURL(payload)
			resolved[i] = media.Asset{URL: payload, PublicID: id}
			continue
		}
		payloads = append(payloads, payload)
		positions = append(positions, i)
	}

	if len(payloads) == 0 {
		return resolved, nil
	}

	offsets := make([]int, len(positions))
	for i, pos := range positions {
		offsets[i] = pos + 1
	}

	uploaded, err := media.UploadAll(ctx, m.host, payloads, m.folder)
	if err != nil {
		return nil, asUploadError(err, offsets)
	}
	for i, pos := range positions {
		resolved[pos] = uploaded[i]
	}
	return resolved, nil
}

func trimPtr(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// applyString 仅当请求中带有该字段时替换 dst
func applyString(dst *string, value *string) {
	if value != nil {
		*dst = strings.TrimSpace(*value)
	}
}

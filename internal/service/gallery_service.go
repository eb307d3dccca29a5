package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/logger"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/youtube"
	"gorm.io/gorm"
)

// ImageInput is one element of a gallery payload: either a raw payload (data URI or
// remote URL) sent as a JSON string, or an already stored {url, public_id} object.
type ImageInput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Raw      string `json:"-"`
}

// UnmarshalJSON accepts both the string and the object form.
func (in *ImageInput) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*in = ImageInput{Raw: raw}
		return nil
	}

	var stored struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("image must be a string or an object with url and public_id: %w", err)
	}
	*in = ImageInput{URL: stored.URL, PublicID: stored.PublicID}
	return nil
}

func (in ImageInput) isStored() bool {
	return strings.TrimSpace(in.URL) != "" && strings.TrimSpace(in.PublicID) != ""
}

func (in ImageInput) payload() string {
	if raw := strings.TrimSpace(in.Raw); raw != "" {
		return raw
	}
	return strings.TrimSpace(in.URL)
}

// GalleryInput represents fields accepted when creating or updating a gallery entry.
type GalleryInput struct {
	Title       string
	Description string
	Category    string
	YoutubeURL  string
	Images      []ImageInput
}

// GalleryService resolves gallery entries between the media host and the document store.
type GalleryService struct {
	db     *gorm.DB
	assets assetManager
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB, host media.Host, baseFolder string) *GalleryService {
	return &GalleryService{db: gdb, assets: newAssetManager(host, baseFolder, "gallery")}
}

// List returns entries newest first, optionally restricted to one category.
func (s *GalleryService) List(ctx context.Context, category string) ([]db.GalleryEntry, error) {
	query := s.db.WithContext(ctx).Model(&db.GalleryEntry{})
	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		query = query.Where("category = ?", category)
	}

	items := []db.GalleryEntry{}
	if err := query.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a gallery entry by id.
func (s *GalleryService) Get(ctx context.Context, id uint) (*db.GalleryEntry, error) {
	return findByID[db.GalleryEntry](s.db.WithContext(ctx), id, ErrGalleryNotFound)
}

// Create validates the category-specific fields, uploads raw images and persists the entry.
// Nothing is persisted when validation or any upload fails.
func (s *GalleryService) Create(ctx context.Context, input GalleryInput) (*db.GalleryEntry, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, newValidationError("title and description are required")
	}

	category, err := normalizeGalleryCategory(input.Category, db.GalleryCategoryNormal)
	if err != nil {
		return nil, err
	}

	entry := db.GalleryEntry{
		Title:       title,
		Description: description,
		Category:    category,
		Images:      []db.MediaAsset{},
	}

	if category == db.GalleryCategoryVlog {
		ref, ok := youtube.Normalize(input.YoutubeURL)
		if !ok {
			return nil, ErrYoutubeURLRequired
		}
		entry.YoutubeURL = ref.CanonicalURL
	} else {
		if len(input.Images) == 0 {
			return nil, ErrGalleryImagesRequired
		}
		images, err := s.resolveImages(ctx, input.Images)
		if err != nil {
			return nil, err
		}
		entry.Images = images
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update applies input to an existing entry. Switching to vlog releases every stored
// image; replacing the image list releases the dropped ones. Cleanup never fails the update.
func (s *GalleryService) Update(ctx context.Context, id uint, input GalleryInput) (*db.GalleryEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fallback := entry.Category
	if fallback == "" {
		fallback = db.GalleryCategoryNormal
	}
	next, err := normalizeGalleryCategory(input.Category, fallback)
	if err != nil {
		return nil, err
	}

	var released []string
	if next == db.GalleryCategoryVlog {
		raw := input.YoutubeURL
		if strings.TrimSpace(raw) == "" {
			raw = entry.YoutubeURL
		}
		ref, ok := youtube.Normalize(raw)
		if !ok {
			return nil, ErrYoutubeURLRequired
		}
		released = entry.PublicIDs()
		entry.Images = []db.MediaAsset{}
		entry.YoutubeURL = ref.CanonicalURL
	} else {
		switch {
		case len(input.Images) > 0:
			images, err := s.resolveImages(ctx, input.Images)
			if err != nil {
				return nil, err
			}
			released = droppedPublicIDs(entry.Images, images)
			entry.Images = images
		case len(entry.Images) == 0:
			return nil, ErrGalleryImagesRequired
		}
		entry.YoutubeURL = ""
	}
	entry.Category = next

	if title := strings.TrimSpace(input.Title); title != "" {
		entry.Title = title
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		entry.Description = description
	}

	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}

	if len(released) > 0 {
		logger.For(ctx).WithField("gallery_id", entry.ID).Infof("releasing %d gallery assets", len(released))
		media.Cleanup(ctx, s.assets.host, released)
	}
	return entry, nil
}

// Delete releases every stored image best-effort, then removes the document.
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	media.Cleanup(ctx, s.assets.host, entry.PublicIDs())
	return s.db.WithContext(ctx).Delete(entry).Error
}

// UploadImage stores a single raw payload and returns its reference.
func (s *GalleryService) UploadImage(ctx context.Context, payload string) (media.Asset, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return media.Asset{}, newValidationError("image is required")
	}

	asset, err := s.assets.host.Upload(ctx, payload, s.assets.folder)
	if err != nil {
		return media.Asset{}, &UploadError{Err: err}
	}
	return asset, nil
}

func (s *GalleryService) resolveImages(ctx context.Context, inputs []ImageInput) ([]db.MediaAsset, error) {
	assets, err := s.assets.resolveImages(ctx, inputs)
	if err != nil {
		return nil, err
	}

	images := make([]db.MediaAsset, len(assets))
	for i, asset := range assets {
		images[i] = db.MediaAsset{URL: asset.URL, PublicID: asset.PublicID}
	}
	return images, nil
}

func normalizeGalleryCategory(value, fallback string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(value))
	if category == "" {
		category = fallback
	}

	switch category {
	case db.GalleryCategoryNormal, db.GalleryCategoryVlog:
		return category, nil
	default:
		return "", newValidationError("category must be %q or %q", db.GalleryCategoryNormal, db.GalleryCategoryVlog)
	}
}

// droppedPublicIDs 返回 previous 中存在而 next 中不再引用的资源 ID
func droppedPublicIDs(previous, next []db.MediaAsset) []string {
	kept := make(map[string]struct{}, len(next))
	for _, image := range next {
		kept[image.PublicID] = struct{}{}
	}

	var dropped []string
	for _, image := range previous {
		if image.PublicID == "" {
			continue
		}
		if _, ok := kept[image.PublicID]; !ok {
			dropped = append(dropped, image.PublicID)
		}
	}
	return dropped
}

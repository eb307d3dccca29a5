package service

import (
	"context"
	"errors"
	"strings"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/media"
	"gorm.io/gorm"
)

// PageItemInput 页面中的一个有序条目，Image 可以是原始数据或已托管的 URL
type PageItemInput struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Year        string `json:"year"`
	Image       string `json:"image"`
}

// PageInput 页面字段，nil 字段保持不变
type PageInput struct {
	Title     *string          `json:"title"`
	Subtitle  *string          `json:"subtitle"`
	Body      *string          `json:"body"`
	HeroImage *string          `json:"heroImage"`
	Items     *[]PageItemInput `json:"items"`
}

// PageService manages the about, achievement, journey and home singletons.
type PageService struct {
	db     *gorm.DB
	assets assetManager
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB, host media.Host, baseFolder string) *PageService {
	return &PageService{db: gdb, assets: newAssetManager(host, baseFolder, "pages")}
}

// IsPageKey reports whether key names a known page singleton.
func IsPageKey(key string) bool {
	for _, known := range db.PageKeys {
		if key == known {
			return true
		}
	}
	return false
}

// Get returns the page stored under key.
func (s *PageService) Get(ctx context.Context, key string) (*db.PageContent, error) {
	page, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}
	page.BodyHTML = RenderMarkdown(page.Body)
	return page, nil
}

// Save merges input into the page stored under key, creating it on first write.
func (s *PageService) Save(ctx context.Context, key string, input PageInput) (*db.PageContent, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	page, err := s.find(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrPageNotFound) {
			return nil, err
		}
		page = &db.PageContent{Key: key, Items: []db.PageItem{}}
	}

	applyString(&page.Title, input.Title)
	applyString(&page.Subtitle, input.Subtitle)
	if input.Body != nil {
		page.Body = *input.Body
	}

	var released []string
	if input.HeroImage != nil {
		next := trimPtr(input.HeroImage)
		if next == "" {
			released = append(released, page.HeroImage)
			page.HeroImage = ""
		} else if next != page.HeroImage {
			stored, err := s.assets.store(ctx, next)
			if err != nil {
				return nil, err
			}
			released = append(released, page.HeroImage)
			page.HeroImage = stored
		}
	}

	if input.Items != nil {
		items, err := s.resolveItems(ctx, *input.Items)
		if err != nil {
			return nil, err
		}
		released = append(released, droppedItemImages(page.Items, items)...)
		page.Items = items
	}

	if err := s.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	s.assets.release(ctx, released...)

	page.BodyHTML = RenderMarkdown(page.Body)
	return page, nil
}

func (s *PageService) find(ctx context.Context, key string) (*db.PageContent, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !IsPageKey(key) {
		return nil, ErrPageNotFound
	}

	var page db.PageContent
	if err := s.db.WithContext(ctx).Where(&db.PageContent{Key: key}).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// resolveItems 并发上传条目中的原始图片，已托管的 URL 直接保留
func (s *PageService) resolveItems(ctx context.Context, inputs []PageItemInput) ([]db.PageItem, error) {
	items := make([]db.PageItem, len(inputs))
	var images []ImageInput
	var positions []int

	for i, input := range inputs {
		items[i] = db.PageItem{
			Title:       strings.TrimSpace(input.Title),
			Subtitle:    strings.TrimSpace(input.Subtitle),
			Description: strings.TrimSpace(input.Description),
			Year:        strings.TrimSpace(input.Year),
		}
		if items[i].Title == "" {
			return nil, newValidationError("item %d title is required", i+1)
		}

		image := strings.TrimSpace(input.Image)
		switch {
		case image == "":
		case media.IsRemoteURL(image) || s.assets.owns(image):
			items[i].Image = image
		default:
			images = append(images, ImageInput{Raw: image})
			positions = append(positions, i)
		}
	}

	if len(images) == 0 {
		return items, nil
	}

	assets, err := s.assets.resolveImages(ctx, images)
	if err != nil {
		var uploadErr *UploadError
		if errors.As(err, &uploadErr) && uploadErr.Index > 0 {
			uploadErr.Index = positions[uploadErr.Index-1] + 1
		}
		return nil, err
	}
	for i, pos := range positions {
		items[pos].Image = assets[i].URL
	}
	return items, nil
}

func droppedItemImages(previous, next []db.PageItem) []string {
	kept := make(map[string]struct{}, len(next))
	for _, item := range next {
		kept[item.Image] = struct{}{}
	}

	var dropped []string
	for _, item := range previous {
		if item.Image == "" {
			continue
		}
		if _, ok := kept[item.Image]; !ok {
			dropped = append(dropped, item.Image)
		}
	}
	return dropped
}

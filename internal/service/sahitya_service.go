package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/leadersite/internal/db"
	"gorm.io/gorm"
)

// SahityaInput 文学作品字段，更新时 nil 字段保持不变
type SahityaInput struct {
	Title    *string `json:"title"`
	Author   *string `json:"author"`
	Category *string `json:"category"`
	Content  *string `json:"content"`
}

// SahityaService handles literature CRUD and slug assignment.
type SahityaService struct {
	db *gorm.DB
}

// NewSahityaService creates a SahityaService instance.
func NewSahityaService(gdb *gorm.DB) *SahityaService {
	return &SahityaService{db: gdb}
}

// List returns entries newest first.
func (s *SahityaService) List(ctx context.Context) ([]db.Sahitya, error) {
	items := []db.Sahitya{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ContentHTML = RenderMarkdown(items[i].Content)
	}
	return items, nil
}

// Get fetches an entry by id.
func (s *SahityaService) Get(ctx context.Context, id uint) (*db.Sahitya, error) {
	item, err := findByID[db.Sahitya](s.db.WithContext(ctx), id, ErrSahityaNotFound)
	if err != nil {
		return nil, err
	}
	item.ContentHTML = RenderMarkdown(item.Content)
	return item, nil
}

// GetBySlug fetches an entry by its public slug.
func (s *SahityaService) GetBySlug(ctx context.Context, value string) (*db.Sahitya, error) {
	var item db.Sahitya
	if err := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(value)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSahityaNotFound
		}
		return nil, err
	}
	item.ContentHTML = RenderMarkdown(item.Content)
	return &item, nil
}

// Create stores an entry with a slug derived from its title.
func (s *SahityaService) Create(ctx context.Context, input SahityaInput) (*db.Sahitya, error) {
	item := db.Sahitya{
		Title:    trimPtr(input.Title),
		Author:   trimPtr(input.Author),
		Category: trimPtr(input.Category),
		Content:  trimPtr(input.Content),
	}
	if isBlank(item.Title, item.Content) {
		return nil, newValidationError("title and content are required")
	}

	value, err := s.uniqueSlug(ctx, item.Title, 0)
	if err != nil {
		return nil, err
	}
	item.Slug = value

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	item.ContentHTML = RenderMarkdown(item.Content)
	return &item, nil
}

// Update replaces the fields present in input. A changed title regenerates the slug.
func (s *SahityaService) Update(ctx context.Context, id uint, input SahityaInput) (*db.Sahitya, error) {
	item, err := findByID[db.Sahitya](s.db.WithContext(ctx), id, ErrSahityaNotFound)
	if err != nil {
		return nil, err
	}

	previousTitle := item.Title
	applyString(&item.Title, input.Title)
	applyString(&item.Author, input.Author)
	applyString(&item.Category, input.Category)
	applyString(&item.Content, input.Content)
	if isBlank(item.Title, item.Content) {
		return nil, newValidationError("title and content cannot be empty")
	}

	if item.Title != previousTitle {
		value, err := s.uniqueSlug(ctx, item.Title, item.ID)
		if err != nil {
			return nil, err
		}
		item.Slug = value
	}

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	item.ContentHTML = RenderMarkdown(item.Content)
	return item, nil
}

// Delete removes an entry.
func (s *SahityaService) Delete(ctx context.Context, id uint) error {
	item, err := findByID[db.Sahitya](s.db.WithContext(ctx), id, ErrSahityaNotFound)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

// uniqueSlug 基于标题生成 slug，冲突时追加短 uuid 后缀。
func (s *SahityaService) uniqueSlug(ctx context.Context, title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return shortID(), nil
	}

	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		var count int64
		query := s.db.WithContext(ctx).Model(&db.Sahitya{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + shortID()
	}
	return base + "-" + uuid.NewString(), nil
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

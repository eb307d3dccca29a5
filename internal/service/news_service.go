package service

import (
	"context"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/media"
	"gorm.io/gorm"
)

// NewsInput 新闻字段，更新时 nil 字段保持不变
type NewsInput struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	Content     *string `json:"content"`
	Source      *string `json:"source"`
	Link        *string `json:"link"`
	PublishedAt *string `json:"publishedAt"`
	Image       *string `json:"image"`
}

// NewsService handles news article CRUD.
type NewsService struct {
	db     *gorm.DB
	assets assetManager
}

// NewNewsService creates a NewsService instance.
func NewNewsService(gdb *gorm.DB, host media.Host, baseFolder string) *NewsService {
	return &NewsService{db: gdb, assets: newAssetManager(host, baseFolder, "news")}
}

// List returns articles newest first with rendered content.
func (s *NewsService) List(ctx context.Context) ([]db.NewsArticle, error) {
	items := []db.NewsArticle{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		renderNews(&items[i])
	}
	return items, nil
}

// Get fetches an article by id.
func (s *NewsService) Get(ctx context.Context, id uint) (*db.NewsArticle, error) {
	article, err := findByID[db.NewsArticle](s.db.WithContext(ctx), id, ErrNewsNotFound)
	if err != nil {
		return nil, err
	}
	renderNews(article)
	return article, nil
}

// Create uploads the cover image and stores the article.
func (s *NewsService) Create(ctx context.Context, input NewsInput) (*db.NewsArticle, error) {
	article := db.NewsArticle{
		Title:       trimPtr(input.Title),
		Summary:     trimPtr(input.Summary),
		Content:     trimPtr(input.Content),
		Source:      trimPtr(input.Source),
		Link:        trimPtr(input.Link),
		PublishedAt: trimPtr(input.PublishedAt),
	}
	if isBlank(article.Title, article.Content) {
		return nil, newValidationError("title and content are required")
	}
	if trimPtr(input.Image) == "" {
		return nil, newValidationError("image is required")
	}

	url, err := s.assets.store(ctx, *input.Image)
	if err != nil {
		return nil, err
	}
	article.Image = url

	if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
		s.assets.release(ctx, url)
		return nil, err
	}
	renderNews(&article)
	return &article, nil
}

// Update replaces the fields present in input.
func (s *NewsService) Update(ctx context.Context, id uint, input NewsInput) (*db.NewsArticle, error) {
	article, err := findByID[db.NewsArticle](s.db.WithContext(ctx), id, ErrNewsNotFound)
	if err != nil {
		return nil, err
	}

	applyString(&article.Title, input.Title)
	applyString(&article.Summary, input.Summary)
	applyString(&article.Content, input.Content)
	applyString(&article.Source, input.Source)
	applyString(&article.Link, input.Link)
	applyString(&article.PublishedAt, input.PublishedAt)
	if isBlank(article.Title, article.Content) {
		return nil, newValidationError("title and content cannot be empty")
	}

	image, release, err := s.assets.replace(ctx, article.Image, trimPtr(input.Image))
	if err != nil {
		return nil, err
	}
	article.Image = image

	if err := s.db.WithContext(ctx).Save(article).Error; err != nil {
		return nil, err
	}
	release()
	renderNews(article)
	return article, nil
}

// Delete removes the cover image best-effort, then the article.
func (s *NewsService) Delete(ctx context.Context, id uint) error {
	article, err := findByID[db.NewsArticle](s.db.WithContext(ctx), id, ErrNewsNotFound)
	if err != nil {
		return err
	}

	s.assets.release(ctx, article.Image)
	return s.db.WithContext(ctx).Delete(article).Error
}

func renderNews(article *db.NewsArticle) {
	article.ContentHTML = RenderMarkdown(article.Content)
}

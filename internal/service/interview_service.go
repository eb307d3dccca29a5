package service

import (
	"context"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/youtube"
	"gorm.io/gorm"
)

// InterviewInput 访谈字段，更新时 nil 字段保持不变
type InterviewInput struct {
	Title       *string `json:"title"`
	Channel     *string `json:"channel"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl"`
	Date        *string `json:"date"`
	Image       *string `json:"image"`
}

// InterviewService handles interview CRUD.
type InterviewService struct {
	db     *gorm.DB
	assets assetManager
}

// NewInterviewService creates an InterviewService instance.
func NewInterviewService(gdb *gorm.DB, host media.Host, baseFolder string) *InterviewService {
	return &InterviewService{db: gdb, assets: newAssetManager(host, baseFolder, "interviews")}
}

// List returns interviews newest first.
func (s *InterviewService) List(ctx context.Context) ([]db.Interview, error) {
	items := []db.Interview{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		attachEmbed(&items[i])
	}
	return items, nil
}

// Get fetches an interview by id.
func (s *InterviewService) Get(ctx context.Context, id uint) (*db.Interview, error) {
	interview, err := findByID[db.Interview](s.db.WithContext(ctx), id, ErrInterviewNotFound)
	if err != nil {
		return nil, err
	}
	attachEmbed(interview)
	return interview, nil
}

// Create uploads the thumbnail and stores the interview.
func (s *InterviewService) Create(ctx context.Context, input InterviewInput) (*db.Interview, error) {
	interview := db.Interview{
		Title:       trimPtr(input.Title),
		Channel:     trimPtr(input.Channel),
		Description: trimPtr(input.Description),
		VideoURL:    canonicalVideoURL(trimPtr(input.VideoURL)),
		Date:        trimPtr(input.Date),
	}
	if interview.Title == "" {
		return nil, newValidationError("title is required")
	}
	if trimPtr(input.Image) == "" {
		return nil, newValidationError("image is required")
	}

	url, err := s.assets.store(ctx, *input.Image)
	if err != nil {
		return nil, err
	}
	interview.Image = url

	if err := s.db.WithContext(ctx).Create(&interview).Error; err != nil {
		s.assets.release(ctx, url)
		return nil, err
	}
	attachEmbed(&interview)
	return &interview, nil
}

// Update replaces the fields present in input.
func (s *InterviewService) Update(ctx context.Context, id uint, input InterviewInput) (*db.Interview, error) {
	interview, err := findByID[db.Interview](s.db.WithContext(ctx), id, ErrInterviewNotFound)
	if err != nil {
		return nil, err
	}

	applyString(&interview.Title, input.Title)
	applyString(&interview.Channel, input.Channel)
	applyString(&interview.Description, input.Description)
	applyString(&interview.Date, input.Date)
	if input.VideoURL != nil {
		interview.VideoURL = canonicalVideoURL(trimPtr(input.VideoURL))
	}
	if interview.Title == "" {
		return nil, newValidationError("title cannot be empty")
	}

	image, release, err := s.assets.replace(ctx, interview.Image, trimPtr(input.Image))
	if err != nil {
		return nil, err
	}
	interview.Image = image

	if err := s.db.WithContext(ctx).Save(interview).Error; err != nil {
		return nil, err
	}
	release()
	attachEmbed(interview)
	return interview, nil
}

// Delete removes the thumbnail best-effort, then the interview.
func (s *InterviewService) Delete(ctx context.Context, id uint) error {
	interview, err := findByID[db.Interview](s.db.WithContext(ctx), id, ErrInterviewNotFound)
	if err != nil {
		return err
	}

	s.assets.release(ctx, interview.Image)
	return s.db.WithContext(ctx).Delete(interview).Error
}

// canonicalVideoURL 将 YouTube 链接规范为 watch 形式，其他链接原样保存
func canonicalVideoURL(value string) string {
	if ref, ok := youtube.Normalize(value); ok {
		return ref.CanonicalURL
	}
	return value
}

func attachEmbed(interview *db.Interview) {
	if embed, ok := youtube.EmbedURL(interview.VideoURL); ok {
		interview.EmbedURL = embed
	}
}

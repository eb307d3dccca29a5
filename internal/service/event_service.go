package service

import (
	"context"
	"strings"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/media"
	"gorm.io/gorm"
)

// EventInput 活动字段，更新时 nil 字段保持不变
type EventInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	IsFeatured  *bool   `json:"isFeatured"`
	Image       *string `json:"image"`
}

// EventService handles event CRUD.
type EventService struct {
	db     *gorm.DB
	assets assetManager
}

// NewEventService creates an EventService instance.
func NewEventService(gdb *gorm.DB, host media.Host, baseFolder string) *EventService {
	return &EventService{db: gdb, assets: newAssetManager(host, baseFolder, "events")}
}

// List returns events newest first.
func (s *EventService) List(ctx context.Context) ([]db.Event, error) {
	items := []db.Event{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches an event by id.
func (s *EventService) Get(ctx context.Context, id uint) (*db.Event, error) {
	return findByID[db.Event](s.db.WithContext(ctx), id, ErrEventNotFound)
}

// Create uploads the event image and stores the event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*db.Event, error) {
	event := db.Event{
		Title:       trimPtr(input.Title),
		Description: trimPtr(input.Description),
		Location:    trimPtr(input.Location),
		Date:        trimPtr(input.Date),
		Time:        trimPtr(input.Time),
	}
	if input.IsFeatured != nil {
		event.IsFeatured = *input.IsFeatured
	}

	if isBlank(event.Title, event.Description, event.Location, event.Date) {
		return nil, newValidationError("title, description, location and date are required")
	}
	if trimPtr(input.Image) == "" {
		return nil, newValidationError("image is required")
	}

	url, err := s.assets.store(ctx, *input.Image)
	if err != nil {
		return nil, err
	}
	event.Image = url

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		s.assets.release(ctx, url)
		return nil, err
	}
	return &event, nil
}

// Update replaces the fields present in input.
func (s *EventService) Update(ctx context.Context, id uint, input EventInput) (*db.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&event.Title, input.Title)
	applyString(&event.Description, input.Description)
	applyString(&event.Location, input.Location)
	applyString(&event.Date, input.Date)
	applyString(&event.Time, input.Time)
	if input.IsFeatured != nil {
		event.IsFeatured = *input.IsFeatured
	}
	if isBlank(event.Title, event.Description, event.Location, event.Date) {
		return nil, newValidationError("title, description, location and date cannot be empty")
	}

	image, release, err := s.assets.replace(ctx, event.Image, trimPtr(input.Image))
	if err != nil {
		return nil, err
	}
	event.Image = image

	if err := s.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	release()
	return event, nil
}

// Delete removes the event image best-effort, then the event.
func (s *EventService) Delete(ctx context.Context, id uint) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	s.assets.release(ctx, event.Image)
	return s.db.WithContext(ctx).Delete(event).Error
}

func isBlank(values ...string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return true
		}
	}
	return false
}

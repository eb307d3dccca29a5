package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/logger"
	"github.com/leadersite/internal/mail"
	"github.com/leadersite/internal/media"
	"gorm.io/gorm"
)

// ContactHeroInput 联系页横幅的可选字段
type ContactHeroInput struct {
	Title           *string `json:"title"`
	Subtitle        *string `json:"subtitle"`
	BackgroundImage *string `json:"backgroundImage"`
}

// ContactInfoInput 联系方式的可选字段
type ContactInfoInput struct {
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	OfficeHours *string `json:"officeHours"`
}

// ContactAdditionalInfoInput 补充说明的可选字段
type ContactAdditionalInfoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// ContactInput 按分区合并到联系页单例
type ContactInput struct {
	Hero           *ContactHeroInput           `json:"hero"`
	ContactInfo    *ContactInfoInput           `json:"contactInfo"`
	AdditionalInfo *ContactAdditionalInfoInput `json:"additionalInfo"`
}

// ContactMessage 公开联系表单提交的访客留言
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ContactService manages the contact singleton and relays visitor messages.
type ContactService struct {
	db        *gorm.DB
	assets    assetManager
	mailer    mail.Mailer
	recipient string
	validate  *validator.Validate
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB, host media.Host, baseFolder string, mailer mail.Mailer, recipient string) *ContactService {
	return &ContactService{
		db:        gdb,
		assets:    newAssetManager(host, baseFolder, "contact"),
		mailer:    mailer,
		recipient: strings.TrimSpace(recipient),
		validate:  validator.New(),
	}
}

// Get returns the contact singleton.
func (s *ContactService) Get(ctx context.Context) (*db.ContactPage, error) {
	var page db.ContactPage
	err := s.db.WithContext(ctx).Where(&db.ContactPage{Key: db.ContactPageKey}).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Update merges input into the singleton, creating it on first write.
func (s *ContactService) Update(ctx context.Context, input ContactInput) (*db.ContactPage, error) {
	page, err := s.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrContactNotFound) {
			return nil, err
		}
		page = &db.ContactPage{Key: db.ContactPageKey}
	}

	release := func() {}
	if hero := input.Hero; hero != nil {
		applyString(&page.Hero.Title, hero.Title)
		applyString(&page.Hero.Subtitle, hero.Subtitle)
		if hero.BackgroundImage != nil {
			next := trimPtr(hero.BackgroundImage)
			if next == "" {
				current := page.Hero.BackgroundImage
				release = func() { s.assets.release(ctx, current) }
				page.Hero.BackgroundImage = ""
			} else {
				image, releaseOld, err := s.assets.replace(ctx, page.Hero.BackgroundImage, next)
				if err != nil {
					return nil, err
				}
				page.Hero.BackgroundImage = image
				release = releaseOld
			}
		}
	}
	if info := input.ContactInfo; info != nil {
		applyString(&page.ContactInfo.Email, info.Email)
		applyString(&page.ContactInfo.Phone, info.Phone)
		applyString(&page.ContactInfo.Address, info.Address)
		applyString(&page.ContactInfo.OfficeHours, info.OfficeHours)
	}
	if additional := input.AdditionalInfo; additional != nil {
		applyString(&page.AdditionalInfo.Title, additional.Title)
		applyString(&page.AdditionalInfo.Description, additional.Description)
	}

	if err := s.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, err
	}
	release()
	return page, nil
}

// Submit validates a visitor message and relays it to the configured recipient.
func (s *ContactService) Submit(ctx context.Context, msg ContactMessage) error {
	msg = ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
	}
	if err := s.validate.Struct(msg); err != nil {
		return contactValidationError(err)
	}

	if s.recipient == "" {
		return errors.New("contact recipient is not configured")
	}

	err := s.mailer.Send(ctx, mail.Message{
		To:      s.recipient,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("Contact form: %s", msg.Subject),
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\n%s\n",
			msg.Name, msg.Email, msg.Subject, msg.Message),
	})
	if err != nil {
		logger.For(ctx).WithError(err).Error("failed to relay contact message")
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}

func contactValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newValidationError("invalid contact message")
	}

	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "email" {
			return newValidationError("email address is invalid")
		}
	}
	return newValidationError("name, email, subject and message are required")
}

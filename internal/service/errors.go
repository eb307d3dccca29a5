package service

import (
	"errors"
	"fmt"

	"github.com/leadersite/internal/media"
	"gorm.io/gorm"
)

// ValidationError is a missing or malformed field in the caller's payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is a missing document.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " not found"
}

// UploadError is a failed media host call that prevents the request from being honored.
// Index is the 1-based position of the failing image, or 0 for single uploads.
type UploadError struct {
	Index int
	Err   error
}

func (e *UploadError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("failed to upload image %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("failed to upload image: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// UnauthorizedError is a missing or invalid admin session or credential.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

var (
	ErrGalleryNotFound   = &NotFoundError{Resource: "gallery"}
	ErrEventNotFound     = &NotFoundError{Resource: "event"}
	ErrNewsNotFound      = &NotFoundError{Resource: "news article"}
	ErrInterviewNotFound = &NotFoundError{Resource: "interview"}
	ErrSahityaNotFound   = &NotFoundError{Resource: "sahitya"}
	ErrPageNotFound      = &NotFoundError{Resource: "page"}
	ErrContactNotFound   = &NotFoundError{
		Resource: "contact",
		Message:  "contact content not found; create it first with PUT /api/contact",
	}

	ErrYoutubeURLRequired    = &ValidationError{Message: "valid YouTube URL required"}
	ErrGalleryImagesRequired = &ValidationError{Message: "at least one image required"}

	ErrInvalidCredentials = &UnauthorizedError{Message: "invalid username or password"}
)

// asUploadError 将批量上传失败转换为 UploadError。
// offsets 把批次中的位置映射回调用方从 1 开始的图片序号。
func asUploadError(err error, offsets []int) error {
	var itemErr *media.ItemError
	if errors.As(err, &itemErr) {
		index := itemErr.Index
		if index > 0 && index <= len(offsets) {
			index = offsets[index-1]
		}
		return &UploadError{Index: index, Err: itemErr.Err}
	}
	return &UploadError{Err: err}
}

// findByID loads a document or returns notFound.
func findByID[T any](tx *gorm.DB, id uint, notFound error) (*T, error) {
	var item T
	if err := tx.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &item, nil
}

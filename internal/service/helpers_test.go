package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/mail"
	"github.com/leadersite/internal/media"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testFolder  = "leadersite"
	testCDNBase = "https://cdn.test/"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to open test db")
	require.NoError(t, gdb.AutoMigrate(db.Models()...), "failed to migrate test db")

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// mockHost records uploads and deletes; URLs under testCDNBase resolve to their path.
type mockHost struct {
	mock.Mock
}

func (m *mockHost) Upload(ctx context.Context, payload, folder string) (media.Asset, error) {
	args := m.Called(ctx, payload, folder)
	return args.Get(0).(media.Asset), args.Error(1)
}

func (m *mockHost) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func (m *mockHost) PublicIDFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, testCDNBase) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, testCDNBase), true
}

// expectUpload makes payload upload to an asset named id.
func (m *mockHost) expectUpload(payload, folder, id string) {
	m.On("Upload", mock.Anything, payload, folder).
		Return(media.Asset{URL: testCDNBase + id, PublicID: id}, nil).
		Once()
}

func (m *mockHost) deletedIDs() []string {
	var ids []string
	for _, call := range m.Calls {
		if call.Method == "Delete" {
			ids = append(ids, call.Arguments.String(1))
		}
	}
	return ids
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func strPtr(value string) *string {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}

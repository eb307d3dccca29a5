package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalHost 将上传文件保存在磁盘，并通过 URL 前缀对外提供
type LocalHost struct {
	dir     string
	urlPath string
}

// NewLocalHost 目录不存在时自动创建
func NewLocalHost(dir, urlPath string) (*LocalHost, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "web/static/uploads"
	}
	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	if urlPath == "/" {
		urlPath = "/static/uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalHost{dir: dir, urlPath: urlPath}, nil
}

// Dir 返回文件写入的目录
func (h *LocalHost) Dir() string {
	return h.dir
}

// URLPath 返回上传文件的访问前缀
func (h *LocalHost) URLPath() string {
	return h.urlPath
}

// Upload 将 data URI 写入磁盘，文件名为 日期-uuid
func (h *LocalHost) Upload(ctx context.Context, payload, folder string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}

	decoded, err := decodeImagePayload(payload)
	if err != nil {
		return Asset{}, err
	}

	folder = sanitizeFolder(folder)
	targetDir := filepath.Join(h.dir, filepath.FromSlash(folder))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Asset{}, fmt.Errorf("create upload folder: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), decoded.Extension())
	if err := os.WriteFile(filepath.Join(targetDir, name), decoded.Data, 0o644); err != nil {
		return Asset{}, fmt.Errorf("write upload: %w", err)
	}

	publicID := path.Join(folder, name)
	return Asset{
		URL:      path.Join(h.urlPath, publicID),
		PublicID: publicID,
	}, nil
}

// Delete 删除 publicID 对应的文件，文件不存在不视为错误
func (h *LocalHost) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned := path.Clean("/" + strings.TrimSpace(publicID))
	if cleaned == "/" {
		return fmt.Errorf("invalid public id %q", publicID)
	}

	err := os.Remove(filepath.Join(h.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// PublicIDFromURL 去掉 Upload 生成的 URL 中的访问前缀
func (h *LocalHost) PublicIDFromURL(rawURL string) (string, bool) {
	prefix := h.urlPath + "/"
	trimmed := strings.TrimSpace(rawURL)
	idx := strings.Index(trimmed, prefix)
	if idx < 0 {
		return "", false
	}
	id := trimmed[idx+len(prefix):]
	if id == "" {
		return "", false
	}
	return id, true
}

func sanitizeFolder(folder string) string {
	cleaned := strings.Trim(path.Clean("/"+strings.TrimSpace(folder)), "/")
	if cleaned == "" || cleaned == "." {
		return "misc"
	}
	return cleaned
}

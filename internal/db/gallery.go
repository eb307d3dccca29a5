package db

import (
	"github.com/leadersite/internal/youtube"
	"gorm.io/gorm"
)

const (
	GalleryCategoryNormal = "normal"
	GalleryCategoryVlog   = "vlog"
)

// MediaAsset 是媒体托管服务返回的资源引用。
type MediaAsset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// GalleryEntry 相册条目：normal 为图片集合，vlog 为单个 YouTube 视频。
// Category 为 normal 时 Images 非空；为 vlog 时仅设置 YoutubeURL。
type GalleryEntry struct {
	Model
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    string       `gorm:"size:20;index;default:normal" json:"category"`
	Images      []MediaAsset `gorm:"type:text;serializer:json" json:"images"`
	YoutubeURL  string       `gorm:"size:255" json:"youtubeUrl,omitempty"`

	ThumbnailURL string `gorm:"-" json:"thumbnailUrl,omitempty"`
}

// TableName 沿用前台使用的集合名
func (GalleryEntry) TableName() string {
	return "galleries"
}

// PublicIDs 返回条目引用的远程资源 ID
func (g GalleryEntry) PublicIDs() []string {
	ids := make([]string, 0, len(g.Images))
	for _, image := range g.Images {
		if image.PublicID != "" {
			ids = append(ids, image.PublicID)
		}
	}
	return ids
}

// AfterFind 保证 Images 始终序列化为 JSON 数组
func (g *GalleryEntry) AfterFind(tx *gorm.DB) error {
	if g.Images == nil {
		g.Images = []MediaAsset{}
	}
	g.fillThumbnail()
	return nil
}

// AfterSave 让创建和更新的响应同样带上缩略图。
func (g *GalleryEntry) AfterSave(tx *gorm.DB) error {
	g.fillThumbnail()
	return nil
}

func (g *GalleryEntry) fillThumbnail() {
	g.ThumbnailURL = ""
	if g.Category != GalleryCategoryVlog {
		return
	}
	if thumb, ok := youtube.ThumbnailURL(g.YoutubeURL); ok {
		g.ThumbnailURL = thumb
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/service"
)

type galleryPayload struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	YoutubeURL  string               `json:"youtubeUrl"`
	Images      []service.ImageInput `json:"images"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	return service.GalleryInput{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		YoutubeURL:  p.YoutubeURL,
		Images:      p.Images,
	}
}

// ListGallery 获取相册列表，可通过 ?category= 过滤
func (a *API) ListGallery(c *gin.Context) {
	items, err := a.gallery.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch gallery")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetGallery 获取单个相册条目
func (a *API) GetGallery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := a.gallery.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to fetch gallery")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateGallery 创建 normal 或 vlog 相册条目
func (a *API) CreateGallery(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.gallery.Create(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create gallery")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateGallery 更新条目，必要时切换分类
func (a *API) UpdateGallery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payload galleryPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	item, err := a.gallery.Update(c.Request.Context(), id, payload.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update gallery")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteGallery 删除条目及其托管图片
func (a *API) DeleteGallery(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := a.gallery.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete gallery")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "gallery deleted successfully"})
}

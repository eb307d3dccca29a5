package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/service"
)

// GetPage 返回读取指定 key 单例页面的处理器
func (a *API) GetPage(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := a.pages.Get(c.Request.Context(), key)
		if err != nil {
			respondServiceError(c, err, "failed to fetch "+key+" content")
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// SavePage 返回保存（不存在则创建）指定 key 单例页面的处理器
func (a *API) SavePage(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input service.PageInput
		if !bindJSON(c, &input, "invalid request body") {
			return
		}

		page, err := a.pages.Save(c.Request.Context(), key, input)
		if err != nil {
			respondServiceError(c, err, "failed to save "+key+" content")
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

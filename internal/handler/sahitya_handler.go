package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSahityaBySlug 通过公开 Slug 获取文学作品
func (a *API) GetSahityaBySlug(c *gin.Context) {
	item, err := a.sahitya.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch sahitya")
		return
	}
	c.JSON(http.StatusOK, item)
}

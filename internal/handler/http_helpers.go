package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/logger"
	"github.com/leadersite/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// pathID 解析 :id，格式错误时返回 400
func pathID(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// respondServiceError 将服务层错误映射为 HTTP 状态码。
// 未分类的错误会记录日志并上报，响应中只返回 fallback。
func respondServiceError(c *gin.Context, err error, fallback string) {
	var (
		validationErr   *service.ValidationError
		notFoundErr     *service.NotFoundError
		uploadErr       *service.UploadError
		unauthorizedErr *service.UnauthorizedError
	)

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		respondError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &uploadErr):
		respondError(c, http.StatusBadRequest, uploadErr.Error())
	case errors.As(err, &unauthorizedErr):
		respondError(c, http.StatusUnauthorized, unauthorizedErr.Error())
	default:
		_ = c.Error(err)
		logger.For(c).WithError(err).Error(fallback)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

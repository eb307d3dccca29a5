package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/service"
)

// GetContact 获取联系页单例
func (a *API) GetContact(c *gin.Context) {
	page, err := a.contact.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to fetch contact content")
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateContact 按分区合并更新联系页
func (a *API) UpdateContact(c *gin.Context) {
	var input service.ContactInput
	if !bindJSON(c, &input, "invalid request body") {
		return
	}

	page, err := a.contact.Update(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "failed to update contact content")
		return
	}
	c.JSON(http.StatusOK, page)
}

// SendContactMessage 将访客留言转发到办公室邮箱
func (a *API) SendContactMessage(c *gin.Context) {
	var msg service.ContactMessage
	if !bindJSON(c, &msg, "invalid request body") {
		return
	}

	if err := a.contact.Submit(c.Request.Context(), msg); err != nil {
		respondServiceError(c, err, "failed to send message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message sent successfully"})
}

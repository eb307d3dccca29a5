package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/logger"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login 校验管理员账号并写入会话
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.auth.Authenticate(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err, "failed to log in")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		logger.For(c).WithError(err).Error("failed to save session")
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "username": user.Username})
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		logger.For(c).WithError(err).Warn("failed to clear session")
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CheckAuth 检查会话是否属于现存的管理员
func (a *API) CheckAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserIDKey).(uint)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	exists, err := a.auth.Exists(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "failed to check session")
		return
	}
	if !exists {
		session.Clear()
		_ = session.Save()
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true, "username": session.Get(sessionUsernameKey)})
}

// AuthRequired 拒绝没有管理员会话的请求
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			respondError(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

package router

import (
	"net/http"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/handler"
	"github.com/leadersite/internal/logger"
	"github.com/leadersite/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionName = "leadersite_session"

// Options 路由层配置
type Options struct {
	SessionSecret  string
	SecureCookie   bool
	AllowedOrigins []string
	// UploadDir/UploadURLPath 用于提供本地托管的媒体，远程托管时留空
	UploadDir     string
	UploadURLPath string
	// EnableSentry 安装 sentry gin 中间件，需先调用 sentry.Init
	EnableSentry bool
	// Registry 注册 HTTP 指标，为 nil 时新建
	Registry *prometheus.Registry
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.EnableSentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(logger.Middleware())

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := middleware.NewMetrics(reg)
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   opts.SecureCookie,
		SameSite: sameSiteMode(opts.SecureCookie),
	})
	r.Use(sessions.Sessions(sessionName, store))

	if dir := strings.TrimSpace(opts.UploadDir); dir != "" && strings.HasPrefix(opts.UploadURLPath, "/") {
		r.Static(strings.TrimRight(opts.UploadURLPath, "/"), dir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	authRequired := handler.AuthRequired()
	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/login", api.Login)
		authGroup.POST("/logout", api.Logout)
		authGroup.GET("/check", api.CheckAuth)
	}

	gallery := apiGroup.Group("/gallery")
	{
		gallery.GET("/all", api.ListGallery)
		gallery.GET("/:id", api.GetGallery)
		gallery.POST("/create", authRequired, api.CreateGallery)
		gallery.POST("/upload", authRequired, api.UploadImage)
		gallery.PUT("/:id", authRequired, api.UpdateGallery)
		gallery.DELETE("/:id", authRequired, api.DeleteGallery)
	}

	registerResource(apiGroup.Group("/events"), api.Events(), authRequired)
	registerResource(apiGroup.Group("/news"), api.News(), authRequired)
	registerResource(apiGroup.Group("/interviews"), api.Interviews(), authRequired)

	sahitya := apiGroup.Group("/sahitya")
	sahitya.GET("/slug/:slug", api.GetSahityaBySlug)
	registerResource(sahitya, api.Sahitya(), authRequired)

	contact := apiGroup.Group("/contact")
	{
		contact.POST("/send", api.SendContactMessage)
		contact.GET("", authRequired, api.GetContact)
		contact.PUT("", authRequired, api.UpdateContact)
	}

	for _, key := range db.PageKeys {
		apiGroup.GET("/"+key, api.GetPage(key))
		apiGroup.PUT("/"+key, authRequired, api.SavePage(key))
	}

	return r
}

// registerResource 注册统一的 CRUD 路由，读取接口保持公开
func registerResource(group *gin.RouterGroup, res handler.Resource, authRequired gin.HandlerFunc) {
	group.GET("/all", res.List)
	group.GET("/:id", res.Get)
	group.POST("/create", authRequired, res.Create)
	group.PUT("/:id", authRequired, res.Update)
	group.DELETE("/:id", authRequired, res.Delete)
}

func sameSiteMode(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

package handler

import (
	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/mail"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/service"
	"gorm.io/gorm"
)

// Options 传递给各服务的配置
type Options struct {
	MediaFolder      string
	ContactRecipient string
}

// API 聚合 HTTP 处理器共享的依赖
type API struct {
	db         *gorm.DB
	gallery    *service.GalleryService
	events     *service.EventService
	news       *service.NewsService
	interviews *service.InterviewService
	sahitya    *service.SahityaService
	contact    *service.ContactService
	pages      *service.PageService
	auth       *service.AuthService
}

// NewAPI 创建带共享服务的处理器集合
func NewAPI(gdb *gorm.DB, host media.Host, mailer mail.Mailer, opts Options) *API {
	return &API{
		db:         gdb,
		gallery:    service.NewGalleryService(gdb, host, opts.MediaFolder),
		events:     service.NewEventService(gdb, host, opts.MediaFolder),
		news:       service.NewNewsService(gdb, host, opts.MediaFolder),
		interviews: service.NewInterviewService(gdb, host, opts.MediaFolder),
		sahitya:    service.NewSahityaService(gdb),
		contact:    service.NewContactService(gdb, host, opts.MediaFolder, mailer, opts.ContactRecipient),
		pages:      service.NewPageService(gdb, host, opts.MediaFolder),
		auth:       service.NewAuthService(gdb),
	}
}

// DB 返回底层的 gorm 实例
func (a *API) DB() *gorm.DB {
	return a.db
}

// Events 活动的 CRUD 处理器
func (a *API) Events() Resource {
	return newResourceHandler[db.Event, service.EventInput]("event", a.events)
}

// News 新闻的 CRUD 处理器
func (a *API) News() Resource {
	return newResourceHandler[db.NewsArticle, service.NewsInput]("news article", a.news)
}

// Interviews 访谈的 CRUD 处理器
func (a *API) Interviews() Resource {
	return newResourceHandler[db.Interview, service.InterviewInput]("interview", a.interviews)
}

// Sahitya 文学作品的 CRUD 处理器
func (a *API) Sahitya() Resource {
	return newResourceHandler[db.Sahitya, service.SahityaInput]("sahitya", a.sahitya)
}

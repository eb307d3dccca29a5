package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/leadersite/internal/config"
	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/handler"
	"github.com/leadersite/internal/logger"
	"github.com/leadersite/internal/mail"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/router"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		exitOnError(ctx, err, "failed to load configuration")
	}
	logger.Configure(cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	sentryEnabled := initSentry(ctx, cfg)
	if sentryEnabled {
		defer sentry.Flush(sentryFlushTimeout)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		exitOnError(ctx, err, "failed to initialize database")
	}
	if err := db.EnsureUser(db.DB, cfg.AdminUserName, cfg.AdminPassword); err != nil {
		exitOnError(ctx, err, "failed to ensure admin user")
	}

	host, err := media.NewFromConfig(ctx, cfg.Media)
	if err != nil {
		exitOnError(ctx, err, "failed to initialize media host")
	}
	mailer, err := mail.NewFromConfig(cfg.Mail)
	if err != nil {
		exitOnError(ctx, err, "failed to initialize mailer")
	}

	api := handler.NewAPI(db.DB, host, mailer, handler.Options{
		MediaFolder:      cfg.Media.Folder,
		ContactRecipient: cfg.Mail.ContactRecipient,
	})

	opts := router.Options{
		SessionSecret:  cfg.SessionSecret,
		SecureCookie:   cfg.Env == config.EnvProd,
		AllowedOrigins: cfg.AllowedOrigins,
		EnableSentry:   sentryEnabled,
	}
	if local, ok := host.(*media.LocalHost); ok {
		opts.UploadDir = local.Dir()
		opts.UploadURLPath = local.URLPath()
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, opts)
	logger.For(ctx).WithFields(logrus.Fields{
		"addr":  cfg.ListenAddr,
		"media": cfg.Media.Provider,
		"mail":  cfg.Mail.Provider,
	}).Info("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		exitOnError(ctx, err, "failed to run server")
	}
}

func initSentry(ctx context.Context, cfg config.AppConfig) bool {
	if cfg.SentryDSN == "" {
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		AttachStacktrace: true,
	})
	if err != nil {
		logger.For(ctx).WithError(err).Error("failed to initialize sentry")
		return false
	}
	return true
}

// exitOnError 先把错误上报并刷新 Sentry，再退出进程；logrus.Fatal 会跳过 defer。
func exitOnError(ctx context.Context, err error, msg string) {
	reportFatal(err)
	logger.For(ctx).WithError(err).Fatal(msg)
}

func reportFatal(err error) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
	hub.Flush(sentryFlushTimeout)
}

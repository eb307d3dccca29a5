package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Env            string   `env:"ENV" env-default:"local"`
	ListenAddr     string   `env:"LISTEN_ADDR"`
	Port           string   `env:"PORT" env-default:"8080"`
	GinMode        string   `env:"GIN_MODE" env-default:"release"`
	LogLevel       string   `env:"LOG_LEVEL" env-default:"info"`
	DatabasePath   string   `env:"DATABASE_PATH" env-default:"leadersite.db"`
	SessionSecret  string   `env:"SESSION_SECRET" env-default:"leadersite-dev-secret"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:","`
	AdminUserName  string   `env:"ADMIN_USERNAME"`
	AdminPassword  string   `env:"ADMIN_PASSWORD"`
	SentryDSN      string   `env:"SENTRY_DSN"`

	Media MediaConfig
	Mail  MailConfig
}

// MediaConfig selects and configures the remote media host.
type MediaConfig struct {
	Provider string `env:"MEDIA_PROVIDER" env-default:"local"`
	Folder   string `env:"MEDIA_FOLDER" env-default:"leadersite"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`

	S3Bucket        string `env:"S3_BUCKET"`
	S3Region        string `env:"S3_REGION" env-default:"ap-south-1"`
	S3AccessKey     string `env:"S3_ACCESS_KEY"`
	S3SecretKey     string `env:"S3_SECRET_KEY"`
	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`

	UploadDir     string `env:"UPLOAD_DIR" env-default:"web/static/uploads"`
	UploadURLPath string `env:"UPLOAD_URL_PATH" env-default:"/static/uploads"`
}

// MailConfig configures the contact-form relay.
type MailConfig struct {
	Provider         string `env:"MAIL_PROVIDER" env-default:"log"`
	From             string `env:"MAIL_FROM"`
	ContactRecipient string `env:"CONTACT_RECIPIENT"`
	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT" env-default:"587"`
	SMTPUser         string `env:"SMTP_USER"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	SendGridAPIKey   string `env:"SENDGRID_API_KEY"`
}

// Load 先尝试读取 .env（缺失时忽略），再从环境变量解析配置并补齐派生字段。
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("read env config: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Port = strings.TrimSpace(c.Port)
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}

	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		if trimmed := strings.TrimRight(strings.TrimSpace(origin), "/"); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.AllowedOrigins = origins

	c.Media.Provider = strings.ToLower(strings.TrimSpace(c.Media.Provider))
	c.Mail.Provider = strings.ToLower(strings.TrimSpace(c.Mail.Provider))
	c.AdminUserName = strings.TrimSpace(c.AdminUserName)
	c.AdminPassword = strings.TrimSpace(c.AdminPassword)

	if strings.TrimSpace(c.Mail.From) == "" {
		c.Mail.From = c.Mail.SMTPUser
	}
}

func (c AppConfig) validate() error {
	switch c.Media.Provider {
	case "local":
	case "cloudinary":
		if c.Media.CloudinaryCloudName == "" || c.Media.CloudinaryAPIKey == "" || c.Media.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary media provider requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	case "s3":
		if c.Media.S3Bucket == "" {
			return fmt.Errorf("s3 media provider requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown MEDIA_PROVIDER %q", c.Media.Provider)
	}

	switch c.Mail.Provider {
	case "log":
	case "smtp":
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("smtp mail provider requires SMTP_HOST")
		}
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid mail provider requires SENDGRID_API_KEY")
		}
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	return nil
}

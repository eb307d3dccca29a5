package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/leadersite/internal/config"
	"github.com/leadersite/internal/db"
	"github.com/leadersite/internal/logger"
	"github.com/leadersite/internal/media"
	"github.com/leadersite/internal/service"
	"gorm.io/gorm"
)

const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
)

// 演示数据生成器：go run ./scripts
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "配置加载失败:", err)
		os.Exit(1)
	}
	logger.Configure(cfg.Env, cfg.LogLevel)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.For(ctx).WithError(err).Fatal("数据库初始化失败")
	}
	host, err := media.NewFromConfig(ctx, cfg.Media)
	if err != nil {
		logger.For(ctx).WithError(err).Fatal("媒体服务初始化失败")
	}

	fmt.Println("开始生成演示数据...")
	username, password := cfg.AdminUserName, cfg.AdminPassword
	if username == "" || password == "" {
		username, password = defaultAdminUser, defaultAdminPassword
	}
	if err := seedAll(ctx, db.DB, host, cfg.Media.Folder, username, password); err != nil {
		logger.For(ctx).WithError(err).Fatal("演示数据生成失败")
	}

	fmt.Println("演示数据生成完成！")
	fmt.Printf("用户: %s (密码: %s)\n", username, password)
}

func seedAll(ctx context.Context, gdb *gorm.DB, host media.Host, folder, username, password string) error {
	if err := db.EnsureUser(gdb, username, password); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedPages(ctx, service.NewPageService(gdb, host, folder)); err != nil {
		return err
	}
	if err := seedContact(ctx, service.NewContactService(gdb, host, folder, nil, "")); err != nil {
		return err
	}
	if err := seedGallery(ctx, gdb, service.NewGalleryService(gdb, host, folder)); err != nil {
		return err
	}
	return seedSahitya(ctx, gdb, service.NewSahityaService(gdb))
}

// 页面单例只在缺失时写入
func seedPages(ctx context.Context, pages *service.PageService) error {
	demo := map[string]service.PageInput{
		db.PageKeyHome: {
			Title:    strPtr("Serving the constituency"),
			Subtitle: strPtr("Development, dignity and dialogue"),
			Body:     strPtr("Welcome to the official site. Follow **events**, news and interviews here."),
		},
		db.PageKeyAbout: {
			Title: strPtr("About"),
			Body:  strPtr("A grassroots worker elected three times from the constituency."),
		},
		db.PageKeyJourney: {
			Title: strPtr("Journey"),
			Items: &[]service.PageItemInput{
				{Title: "Ward councillor", Year: "2009"},
				{Title: "Member of the legislative assembly", Year: "2014"},
				{Title: "Cabinet minister", Year: "2024"},
			},
		},
		db.PageKeyAchievement: {
			Title: strPtr("Achievements"),
			Items: &[]service.PageItemInput{
				{Title: "Rural roads programme", Description: "1,200 km of all-weather roads"},
				{Title: "Scholarship scheme", Description: "40,000 students supported"},
			},
		},
	}

	for _, key := range db.PageKeys {
		if _, err := pages.Get(ctx, key); err == nil {
			fmt.Printf("页面 %s 已存在，跳过创建\n", key)
			continue
		} else if !errors.Is(err, service.ErrPageNotFound) {
			return err
		}
		if _, err := pages.Save(ctx, key, demo[key]); err != nil {
			return fmt.Errorf("seed page %s: %w", key, err)
		}
	}
	fmt.Println("✅ 页面内容创建完成")
	return nil
}

func seedContact(ctx context.Context, contact *service.ContactService) error {
	if _, err := contact.Get(ctx); err == nil {
		fmt.Println("联系页已存在，跳过创建")
		return nil
	} else if !errors.Is(err, service.ErrContactNotFound) {
		return err
	}

	_, err := contact.Update(ctx, service.ContactInput{
		Hero: &service.ContactHeroInput{Title: strPtr("Get in touch"), Subtitle: strPtr("We read every message")},
		ContactInfo: &service.ContactInfoInput{
			Email:       strPtr("office@example.com"),
			Phone:       strPtr("+91 00000 00000"),
			Address:     strPtr("Constituency office, Main Road"),
			OfficeHours: strPtr("Mon-Sat 10:00-17:00"),
		},
		AdditionalInfo: &service.ContactAdditionalInfoInput{
			Title:       strPtr("Public hearing"),
			Description: strPtr("Every first Monday of the month."),
		},
	})
	if err != nil {
		return fmt.Errorf("seed contact: %w", err)
	}
	fmt.Println("✅ 联系页创建完成")
	return nil
}

// 演示图库只写入 vlog，避免依赖媒体托管
func seedGallery(ctx context.Context, gdb *gorm.DB, gallery *service.GalleryService) error {
	var count int64
	if err := gdb.Model(&db.GalleryEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("图库已存在，跳过创建")
		return nil
	}

	vlogs := []service.GalleryInput{
		{Title: "Budget session speech", Description: "Address to the assembly", YoutubeURL: "https://youtu.be/dQw4w9WgXcQ"},
		{Title: "Village visit", Description: "Meeting farmers on the new canal", YoutubeURL: "https://www.youtube.com/shorts/jNQXAC9IVRw"},
	}
	for _, input := range vlogs {
		input.Category = db.GalleryCategoryVlog
		if _, err := gallery.Create(ctx, input); err != nil {
			return fmt.Errorf("seed gallery %q: %w", input.Title, err)
		}
	}
	fmt.Println("✅ 图库视频创建完成")
	return nil
}

func seedSahitya(ctx context.Context, gdb *gorm.DB, sahitya *service.SahityaService) error {
	var count int64
	if err := gdb.Model(&db.Sahitya{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("文集已存在，跳过创建")
		return nil
	}

	entries := []service.SahityaInput{
		{Title: strPtr("Voice of the River"), Author: strPtr("Office archive"), Category: strPtr("poem"), Content: strPtr("The river *remembers* every village it feeds.")},
		{Title: strPtr("Letters to the Young"), Category: strPtr("essay"), Content: strPtr("Public life begins with listening.")},
	}
	for _, input := range entries {
		if _, err := sahitya.Create(ctx, input); err != nil {
			return fmt.Errorf("seed sahitya: %w", err)
		}
	}
	fmt.Println("✅ 文集创建完成")
	return nil
}

func strPtr(value string) *string {
	return &value
}

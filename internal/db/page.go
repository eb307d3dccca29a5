package db

import "gorm.io/gorm"

const (
	PageKeyAbout       = "about"
	PageKeyAchievement = "achievement"
	PageKeyJourney     = "journey"
	PageKeyHome        = "home"

	// ContactPageKey 联系页单例的固定主键
	ContactPageKey = "contact"
)

// PageKeys 单例内容页的键
var PageKeys = []string{PageKeyAbout, PageKeyAchievement, PageKeyJourney, PageKeyHome}

// PageItem 页面中的有序条目，例如里程碑或成就
type PageItem struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	Year        string `json:"year,omitempty"`
	Image       string `json:"image,omitempty"`
}

// PageContent 是 about/achievement/journey/home 的单例内容，每个 Key 只有一行。
type PageContent struct {
	Model
	Key       string     `gorm:"size:40;uniqueIndex;not null" json:"key"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Body      string     `gorm:"type:text" json:"body"`
	HeroImage string     `json:"heroImage"`
	Items     []PageItem `gorm:"type:text;serializer:json" json:"items"`

	BodyHTML string `gorm:"-" json:"bodyHtml,omitempty"`
}

// AfterFind 保证 Items 始终为 JSON 数组
func (p *PageContent) AfterFind(tx *gorm.DB) error {
	if p.Items == nil {
		p.Items = []PageItem{}
	}
	return nil
}

// ContactHero 联系页顶部横幅
type ContactHero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
}

// ContactInfo 联系方式
type ContactInfo struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	OfficeHours string `json:"officeHours"`
}

// ContactAdditionalInfo 补充说明
type ContactAdditionalInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactPage 联系页单例
type ContactPage struct {
	Model
	Key            string                `gorm:"size:40;uniqueIndex;not null" json:"-"`
	Hero           ContactHero           `gorm:"embedded;embeddedPrefix:hero_" json:"hero"`
	ContactInfo    ContactInfo           `gorm:"embedded;embeddedPrefix:info_" json:"contactInfo"`
	AdditionalInfo ContactAdditionalInfo `gorm:"embedded;embeddedPrefix:additional_" json:"additionalInfo"`
}

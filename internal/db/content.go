package db

// Event 活动日程
type Event struct {
	Model
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Location    string `gorm:"not null" json:"location"`
	Date        string `gorm:"size:40;not null" json:"date"`
	Time        string `gorm:"size:40" json:"time"`
	Image       string `gorm:"not null" json:"image"`
	IsFeatured  bool   `json:"isFeatured"`
}

// NewsArticle 新闻稿，Content 为 Markdown
type NewsArticle struct {
	Model
	Title       string `gorm:"not null" json:"title"`
	Summary     string `gorm:"type:text" json:"summary"`
	Content     string `gorm:"type:text;not null" json:"content"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	PublishedAt string `gorm:"size:40" json:"publishedAt"`
	Image       string `gorm:"not null" json:"image"`

	ContentHTML string `gorm:"-" json:"contentHtml,omitempty"`
}

// TableName 返回自定义表名
func (NewsArticle) TableName() string {
	return "news"
}

// Interview 媒体访谈
type Interview struct {
	Model
	Title       string `gorm:"not null" json:"title"`
	Channel     string `json:"channel"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `json:"videoUrl"`
	Date        string `gorm:"size:40" json:"date"`
	Image       string `gorm:"not null" json:"image"`

	EmbedURL string `gorm:"-" json:"embedUrl,omitempty"`
}

// Sahitya 文学作品，公开页面通过 Slug 访问
type Sahitya struct {
	Model
	Title    string `gorm:"not null" json:"title"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Author   string `json:"author"`
	Category string `gorm:"size:80" json:"category"`
	Content  string `gorm:"type:text;not null" json:"content"`

	ContentHTML string `gorm:"-" json:"contentHtml,omitempty"`
}

// TableName 返回自定义表名
func (Sahitya) TableName() string {
	return "sahitya"
}

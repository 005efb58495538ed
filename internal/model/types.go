// 包 model 定义摘要页的数据模型（文章/分组/摘要载荷）。
package model

import "time"

// Article 为归一化后的单条文章。
// 由解析层创建后不再修改；分类继承自所属订阅源。
type Article struct {
	Title            string     `json:"title"`
	Link             string     `json:"link"`
	Summary          string     `json:"summary"`
	Published        *time.Time `json:"published,omitempty"` // nil 表示订阅源未提供时间
	PublishedDisplay string     `json:"published_display"`
	Source           string     `json:"source"`
	Category         string     `json:"category"`
}

// CategoryGroup 为单个分类下的文章序列，桶内顺序即全局时间序的投影。
type CategoryGroup struct {
	Category string    `json:"category"`
	Articles []Article `json:"articles"`
}

// Digest 为一次运行的最终载荷，交给模板渲染；生成后只读。
type Digest struct {
	Title       string          `json:"title"`
	GeneratedAt string          `json:"generated_at"`
	Groups      []CategoryGroup `json:"groups"`
	Total       int             `json:"total"`
	MaxAgeHours float64         `json:"max_age_hours"`
}

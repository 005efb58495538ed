package feeds

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/model"
)

// 上游字段缺失时的固定占位值：逐条降级，绝不因单条坏数据中断订阅源。
const (
	noTitle        = "No title"
	noLink         = "#"
	unknownDisplay = "Date unknown"
)

// displayLayout 对应 "时:分 AM/PM · 月缩写 日"，小时与日均无前导零。
const displayLayout = "3:04 PM · Jan 2"

// ParseEntry 将单条 gofeed 条目归一化为 Article。
func ParseEntry(it *gofeed.Item, sourceName, category string) model.Article {
	a := model.Article{
		Title:            noTitle,
		Link:             noLink,
		PublishedDisplay: unknownDisplay,
		Source:           sourceName,
		Category:         category,
	}
	if it == nil {
		return a
	}
	if t := strings.TrimSpace(it.Title); t != "" {
		a.Title = t
	}
	if it.Link != "" {
		a.Link = it.Link
	}
	a.Summary = CleanSummary(summaryOf(it))
	if pub := publishedOf(it); pub != nil {
		a.Published = pub
		a.PublishedDisplay = pub.Format(displayLayout)
	}
	return a
}

// publishedOf 按固定顺序回退取时间：published → updated；都缺失时返回 nil。
// 时间统一重建为上游解析结果的 UTC 墙钟分量（精确到秒），不做额外时区推断。
func publishedOf(it *gofeed.Item) *time.Time {
	for _, t := range []*time.Time{it.PublishedParsed, it.UpdatedParsed} {
		if t == nil {
			continue
		}
		u := t.UTC()
		p := time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), 0, time.UTC)
		return &p
	}
	return nil
}

// summaryOf 摘要字段回退顺序：description → content，首个非空者胜出。
func summaryOf(it *gofeed.Item) string {
	for _, s := range []string{it.Description, it.Content} {
		if s != "" {
			return s
		}
	}
	return ""
}

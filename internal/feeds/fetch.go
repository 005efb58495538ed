// 包 feeds 负责订阅抓取与条目归一化：
// - FetchFeed：抓取单个订阅源，时效过滤后产出限量的 Article 序列
// - ParseEntry / CleanSummary：逐条归一化与摘要清洗
package feeds

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/config"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/fetch"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/logx"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/model"
)

// overScanFactor：为补偿被时效过滤掉的条目，按上限的倍数多扫描一段原始条目。
const overScanFactor = 2

// FetchFeed 抓取并归一化单个订阅源，最多返回 maxArticles 条，保持上游相对顺序。
// 订阅级的任何失败（网络/解析/空内容）只让该源降级为空结果并记录日志，
// 不向上传播错误中断整轮聚合。
func FetchFeed(ctx context.Context, cl *fetch.Client, src config.Feed, maxAgeHours float64, maxArticles int) []model.Article {
	logx.Infof("抓取订阅：%s", src.Name)
	resp, err := cl.Get(ctx, src.URL)
	if err != nil {
		logx.Warnf("[%s] 抓取失败：%v", src.Name, err)
		return nil
	}
	defer resp.Body.Close()
	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		logx.Warnf("[%s] 解析订阅失败：%v", src.Name, err)
		return nil
	}
	if len(parsed.Items) == 0 {
		logx.Warnf("[%s] 未解析出任何条目", src.Name)
		return nil
	}

	cutoff := time.Now().UTC().Add(-time.Duration(maxAgeHours * float64(time.Hour)))
	category := src.CategoryOrDefault()

	items := parsed.Items
	if limit := maxArticles * overScanFactor; len(items) > limit {
		items = items[:limit]
	}
	articles := make([]model.Article, 0, maxArticles)
	for _, it := range items {
		a := ParseEntry(it, src.Name, category)
		// 无日期的条目不参与时效过滤（部分订阅源不带日期，照常收录）
		if a.Published != nil && a.Published.Before(cutoff) {
			continue
		}
		articles = append(articles, a)
		if len(articles) >= maxArticles {
			break
		}
	}
	logx.Infof("[%s] 文章收集完成：%d", src.Name, len(articles))
	return articles
}

// 包 aggregate 负责主流程编排：
// - 按配置顺序逐个抓取订阅源并合并结果
// - 全局按发布时间倒序稳定排序，无日期条目沉底
// - 按分类分桶（保持全局序）并组装最终 Digest
package aggregate

import (
	"context"
	"sort"
	"time"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/config"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/feeds"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/fetch"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/logx"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/model"
)

// generatedLayout 为摘要生成时间的展示格式（按配置时区）。
const generatedLayout = "Monday, January 2 2006 · 3:04 PM MST"

// minTime 为无日期条目的排序哨兵：比较时显式替换为最小值，
// 不依赖语言对空值比较的隐式行为。
var minTime = time.Time{}

// Runner 聚合执行器，持有配置与 HTTP 客户端。
type Runner struct {
	cfg   *config.Config
	fetch *fetch.Client
}

// New 创建 Runner。
func New(cfg *config.Config, cl *fetch.Client) *Runner {
	return &Runner{cfg: cfg, fetch: cl}
}

// Run 执行一轮聚合并组装 Digest。
// 订阅源全部失败或列表为空时返回空摘要，不报错。
func (r *Runner) Run(ctx context.Context) model.Digest {
	st := r.cfg.Settings
	logx.Infof("开始抓取订阅源：共 %d 个", len(r.cfg.Feeds))

	var all []model.Article
	perCategory := map[string]int{}
	for _, src := range r.cfg.Feeds {
		got := feeds.FetchFeed(ctx, r.fetch, src, st.MaxAgeHours, st.MaxArticlesPerFeed)
		all = append(all, got...)
		perCategory[src.CategoryOrDefault()] += len(got)
	}
	for cat, n := range perCategory {
		logx.Debugf("分类 %s：%d 篇", cat, n)
	}

	sortByRecency(all)
	logx.Infof("聚合完成：共收集 %d 篇文章", len(all))
	return BuildDigest(st, all, time.Now())
}

// sortByRecency 全局按发布时间倒序稳定排序。
// 相同时间或同为无日期的条目保持进入顺序；稳定性是分桶结果确定性的前提。
func sortByRecency(list []model.Article) {
	key := func(a model.Article) time.Time {
		if a.Published == nil {
			return minTime
		}
		return *a.Published
	}
	sort.SliceStable(list, func(i, j int) bool {
		return key(list[i]).After(key(list[j]))
	})
}

// groupByCategory 按分类分桶：只做归属划分，不在桶内重新排序，
// 桶内顺序即全局时间序的投影；分类顺序取其在全局序中的首次出现。
func groupByCategory(list []model.Article) []model.CategoryGroup {
	index := map[string]int{}
	var groups []model.CategoryGroup
	for _, a := range list {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, model.CategoryGroup{Category: a.Category})
		}
		groups[i].Articles = append(groups[i].Articles, a)
	}
	return groups
}

// BuildDigest 组装渲染所需的最终载荷；sorted 须已按全局时间序排好。
func BuildDigest(st config.Settings, sorted []model.Article, now time.Time) model.Digest {
	loc, err := time.LoadLocation(st.Timezone)
	if err != nil {
		// 时区已在配置加载期校验过；此处兜底退回 UTC
		loc = time.UTC
	}
	return model.Digest{
		Title:       st.SiteTitle,
		GeneratedAt: now.In(loc).Format(generatedLayout),
		Groups:      groupByCategory(sorted),
		Total:       len(sorted),
		MaxAgeHours: st.MaxAgeHours,
	}
}

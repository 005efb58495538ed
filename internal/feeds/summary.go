package feeds

import (
	"regexp"
	"strings"
)

// tagPattern 匹配尖括号标签；不做完整 HTML 解析，
// 嵌套或残缺的标记可能清理不净（已知限制）。
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// entityTable 为固定的实体解码表：只解码这五种，顺序固定（&amp; 优先）。
var entityTable = [...][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&#39;", "'"},
	{"&quot;", `"`},
}

// summaryLimit 为摘要正文的最大字符数（按 rune 计），超出时截断并追加省略号。
const summaryLimit = 280

// CleanSummary 清洗摘要文本：去标签 → 解实体 → 折叠空白 → 按需截断。
// 纯函数，任何输入都不会出错；空输入返回空串。
func CleanSummary(raw string) string {
	clean := tagPattern.ReplaceAllString(raw, "")
	for _, e := range entityTable {
		clean = strings.ReplaceAll(clean, e[0], e[1])
	}
	clean = strings.Join(strings.Fields(clean), " ")
	if r := []rune(clean); len(r) > summaryLimit {
		return string(r[:summaryLimit]) + "…"
	}
	return clean
}

// 包 config 负责加载与校验应用配置（feeds.yaml），
// 对外提供结构体 Config 及默认值/合法性校验。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCategory 为订阅源缺省的分类标签。
const DefaultCategory = "General"

// Config 为一次运行的完整配置：全局参数 + 有序的订阅源列表。
type Config struct {
	Settings Settings `yaml:"settings"`
	Feeds    []Feed   `yaml:"feeds"`
}

// Settings 为运行级参数，单轮运行期间不变。
type Settings struct {
	SiteTitle          string  `yaml:"site_title"`
	MaxAgeHours        float64 `yaml:"max_age_hours"`
	MaxArticlesPerFeed int     `yaml:"max_articles_per_feed"`
	Timezone           string  `yaml:"timezone"` // IANA 时区名
	Proxy              Proxy   `yaml:"proxy"`
	LogLevel           string  `yaml:"log_level"`
	LogFormat          string  `yaml:"log_format"` // text|json|pretty
	LogLocale          string  `yaml:"log_locale"` // zh-CN|en
	LogColor           string  `yaml:"log_color"`  // auto|always|never
}

// Feed 为单个上游订阅源的配置，加载后不再修改。
type Feed struct {
	URL      string `yaml:"url"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type Proxy struct {
	HTTP  string `yaml:"http"`
	HTTPS string `yaml:"https"`
}

// CategoryOrDefault 返回分类标签，缺省时退回 General。
func (f Feed) CategoryOrDefault() string {
	if f.Category == "" {
		return DefaultCategory
	}
	return f.Category
}

func Load(path string) (*Config, error) {
	// Load 从文件读取 YAML 并反序列化为 Config，同时进行基础校验与默认值填充。
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	// Validate 负责合法性检查与默认值设置，避免在业务层分散判空逻辑。
	if c.Settings.MaxAgeHours < 0 {
		return errors.New("max_age_hours must be > 0")
	}
	if c.Settings.MaxAgeHours == 0 {
		c.Settings.MaxAgeHours = 24
	}
	if c.Settings.MaxArticlesPerFeed < 0 {
		return errors.New("max_articles_per_feed must be > 0")
	}
	if c.Settings.MaxArticlesPerFeed == 0 {
		c.Settings.MaxArticlesPerFeed = 10
	}
	if c.Settings.Timezone == "" {
		c.Settings.Timezone = "UTC"
	}
	// 时区名尽早校验，避免到渲染阶段才失败
	if _, err := time.LoadLocation(c.Settings.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Settings.Timezone, err)
	}
	if c.Settings.SiteTitle == "" {
		c.Settings.SiteTitle = "Daily Digest"
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = "pretty"
	}
	if c.Settings.LogLocale == "" {
		c.Settings.LogLocale = "zh-CN"
	}
	if c.Settings.LogColor == "" {
		c.Settings.LogColor = "auto"
	}
	for i, f := range c.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d]: url is required", i)
		}
		if f.Name == "" {
			// 展示名缺省退回 URL，保证日志与文章 source 字段可读
			c.Feeds[i].Name = f.URL
		}
	}
	return nil
}

// 命令行入口：
// - 解析 flags 与 feeds.yaml
// - 初始化日志与 HTTP 客户端
// - 运行一轮聚合并渲染 index.html（可选导出 data.json）
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/aggregate"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/config"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/export"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/fetch"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/logx"
	"github.com/Roofsimple/tech-custom-rss-feed/internal/render"
)

func main() {
	var (
		configPath   = flag.String("config", "feeds.yaml", "path to feeds.yaml")
		templatePath = flag.String("template", "templates/digest.html", "path to digest template")
		outPath      = flag.String("out", "index.html", "output html path")
		jsonPath     = flag.String("json", "", "optional data.json export path")
	)
	flag.Parse()

	// 1) 加载配置（失败即中止：没有配置就没有可生成的摘要）
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2) 初始化日志：级别/格式/语言/颜色
	logx.Init(cfg.Settings.LogLevel, cfg.Settings.LogFormat, cfg.Settings.LogLocale, cfg.Settings.LogColor)

	// 3) 初始化 HTTP 客户端：单次尝试，15 秒超时
	cl, err := fetch.New(fetch.Options{
		ProxyHTTP:  cfg.Settings.Proxy.HTTP,
		ProxyHTTPS: cfg.Settings.Proxy.HTTPS,
		Timeout:    15 * time.Second,
	})
	if err != nil {
		log.Fatalf("http client: %v", err)
	}

	// 4) 运行聚合流程（订阅级失败均已在内部降级，不会中止整轮）
	digest := aggregate.New(cfg, cl).Run(context.Background())

	// 5) 渲染输出；渲染失败中止整轮（没有页面就没有意义的部分产物）
	if err := render.WriteHTML(digest, *templatePath, *outPath); err != nil {
		logx.Errorf("渲染失败：%v", err)
		os.Exit(1)
	}
	logx.Infof("摘要已生成：%s", *outPath)

	// 6) 可选导出 data.json
	if *jsonPath != "" {
		if err := export.ToJSON(digest, *jsonPath); err != nil {
			logx.Errorf("导出失败：%v", err)
			os.Exit(1)
		}
		logx.Infof("已导出 %s", *jsonPath)
	}
}

// 包 render 负责将 Digest 渲染为静态 HTML 页面。
package render

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/model"
)

// HTML 用指定模板文件渲染 Digest，返回完整页面文本。
func HTML(d model.Digest, templatePath string) (string, error) {
	t, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", templatePath, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return sb.String(), nil
}

// WriteHTML 渲染并写入目标文件。
func WriteHTML(d model.Digest, templatePath, outPath string) error {
	html, err := HTML(d, templatePath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

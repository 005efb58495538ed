// 包 export 负责可选的数据导出：将 Digest 写为 data.json。
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Roofsimple/tech-custom-rss-feed/internal/model"
)

// ToJSON 将 Digest 以缩进 JSON 写入目标文件（带缩进格式，便于人读与前端消费）。
func ToJSON(d model.Digest, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/gonewx/ripple/pkg/config"
)

// 用法: go run tools/validate_config.go [path]
// 默认检查 data/background.yaml
func main() {
	path := config.DefaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadBackgroundConfig(path)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确: %s\n", path)
	fmt.Printf("✅ 窗口: %q %dx%d\n", cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	fmt.Printf("✅ 像素比上限: %.2f\n", cfg.Render.MaxDevicePixelRatio)
	fmt.Printf("✅ 快捷键: 暂停=%s 全屏=%s\n", cfg.Controls.PauseKey, cfg.Controls.FullscreenKey)

	if *cfg == *config.DefaultBackgroundConfig() {
		fmt.Printf("✅ 与内置默认值一致\n")
	} else {
		fmt.Printf("⚠️  与内置默认值不同（嵌入版本将覆盖代码默认值）\n")
	}
}

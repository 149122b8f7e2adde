package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/background.yaml"

// BackgroundConfig 应用配置
//
// 配置文件位置: data/background.yaml（嵌入），可通过 -config 覆盖
type BackgroundConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Render   RenderConfig   `yaml:"render"`
	Controls ControlsConfig `yaml:"controls"`
	Shell    ShellConfig    `yaml:"shell"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// WindowConfig 窗口设置
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// RenderConfig 渲染设置
type RenderConfig struct {
	// MaxDevicePixelRatio 像素比上限
	MaxDevicePixelRatio float64 `yaml:"maxDevicePixelRatio"`
	// ClearEveryFrame 每帧是否清空屏幕；背景画布独立保存，暂停期间的最后一帧不受影响
	ClearEveryFrame bool `yaml:"clearEveryFrame"`
}

// ControlsConfig 键位设置，键名使用 ebiten.Key 的名称（如 "P", "Space", "F11"）
type ControlsConfig struct {
	PauseKey      string `yaml:"pauseKey"`
	FullscreenKey string `yaml:"fullscreenKey"`
}

// ShellConfig 页面外壳（暂停按钮）设置
type ShellConfig struct {
	ShowToggle bool    `yaml:"showToggle"`
	PauseLabel string  `yaml:"pauseLabel"`
	PlayLabel  string  `yaml:"playLabel"`
	FontSize   float64 `yaml:"fontSize"`
}

// SnapshotConfig 离屏快照的默认参数
type SnapshotConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Time   float64 `yaml:"time"`
}

// DefaultBackgroundConfig 返回内置默认值，与 data/background.yaml 一致
func DefaultBackgroundConfig() *BackgroundConfig {
	return &BackgroundConfig{
		Window: WindowConfig{
			Title:     "Huub — Portfolio",
			Width:     1280,
			Height:    800,
			Resizable: true,
		},
		Render: RenderConfig{
			MaxDevicePixelRatio: 2,
			ClearEveryFrame:     false,
		},
		Controls: ControlsConfig{
			PauseKey:      "P",
			FullscreenKey: "F11",
		},
		Shell: ShellConfig{
			ShowToggle: true,
			PauseLabel: "Pause bg",
			PlayLabel:  "Play bg",
			FontSize:   14,
		},
		Snapshot: SnapshotConfig{
			Width:  640,
			Height: 400,
			Time:   4,
		},
	}
}

// LoadBackgroundConfig 从磁盘加载配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *BackgroundConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadBackgroundConfig(path string) (*BackgroundConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read background config: %w", err)
	}
	return ParseBackgroundConfig(data)
}

// ParseBackgroundConfig 解析 YAML 配置
//
// 未出现在 YAML 中的字段保留默认值。
func ParseBackgroundConfig(data []byte) (*BackgroundConfig, error) {
	cfg := DefaultBackgroundConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse background config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid background config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *BackgroundConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Render.MaxDevicePixelRatio < 1 || c.Render.MaxDevicePixelRatio > 4 {
		return fmt.Errorf("maxDevicePixelRatio must be within [1, 4], got %.2f", c.Render.MaxDevicePixelRatio)
	}
	if strings.TrimSpace(c.Controls.PauseKey) == "" {
		return fmt.Errorf("pauseKey must not be empty")
	}
	if c.Controls.PauseKey == c.Controls.FullscreenKey {
		return fmt.Errorf("pauseKey and fullscreenKey must differ, both are %q", c.Controls.PauseKey)
	}
	if c.Shell.FontSize <= 0 {
		return fmt.Errorf("shell fontSize must be positive, got %.1f", c.Shell.FontSize)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", c.Snapshot.Width, c.Snapshot.Height)
	}
	if c.Snapshot.Time < 0 {
		return fmt.Errorf("snapshot time must not be negative, got %.2f", c.Snapshot.Time)
	}
	return nil
}

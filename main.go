// Command ripple 打开作品集页面的着色器背景
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	-config <path>   配置文件（默认使用嵌入的 data/background.yaml）
//	-verbose         启用详细日志
//	-paused          以暂停状态启动
//	-fullscreen      以全屏启动
//	-no-shader       模拟不支持着色器的环境
//
// Controls:
//
//	Mouse / Touch    - 移动产生高光，点击产生涟漪
//	P                - 暂停/播放背景（可在配置中修改）
//	F11              - 切换全屏
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ripple/pkg/app"
	"github.com/gonewx/ripple/pkg/embedded"
)

var (
	configFlag     = flag.String("config", "", "Path to background config (default: embedded data/background.yaml)")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	pausedFlag     = flag.Bool("paused", false, "Start with the background paused")
	fullscreenFlag = flag.Bool("fullscreen", false, "Start in fullscreen")
	noShaderFlag   = flag.Bool("no-shader", false, "Run without a shader device (static background)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verboseFlag,
		ConfigPath:    *configFlag,
		Paused:        *pausedFlag,
		Fullscreen:    *fullscreenFlag,
		DisableShader: *noShaderFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	cfg := gameApp.BackgroundConfig()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetScreenClearedEveryFrame(cfg.Render.ClearEveryFrame)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(gameApp.Settings().GetSettings().Fullscreen)

	// Start the game loop
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

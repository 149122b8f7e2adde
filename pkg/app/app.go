// Package app 提供作品集页面的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// App 实现 ebiten.Game：Host 负责平台语义，Background 渲染着色器背景，
// Shell 绘制暂停按钮，SettingsManager 持久化用户偏好。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/ripple/pkg/background"
	"github.com/gonewx/ripple/pkg/config"
	"github.com/gonewx/ripple/pkg/embedded"
	"github.com/gonewx/ripple/pkg/game"
	"github.com/gonewx/ripple/pkg/host"
	"github.com/gonewx/ripple/pkg/shell"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空时使用嵌入的 data/background.yaml
	ConfigPath string
	// Paused 以暂停状态启动（覆盖持久化的偏好）
	Paused bool
	// Fullscreen 以全屏启动（覆盖持久化的偏好）
	Fullscreen bool
	// DisableShader 模拟不支持着色器的环境，背景保持静态
	DisableShader bool
}

// pageColor 无背景画布时的页面底色
var pageColor = color.RGBA{R: 5, G: 6, B: 10, A: 255}

// App 是页面的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg      *config.BackgroundConfig
	host     *host.Host
	bg       *background.Background
	shell    *shell.Shell
	settings *game.SettingsManager

	pauseKey      ebiten.Key
	fullscreenKey ebiten.Key

	startPaused              bool
	mobile                   bool // 移动端没有键盘快捷键
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	closed                   bool
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	bgCfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	pauseKey, err := ParseKey(bgCfg.Controls.PauseKey)
	if err != nil {
		return nil, fmt.Errorf("pauseKey 无效: %w", err)
	}
	fullscreenKey, err := ParseKey(bgCfg.Controls.FullscreenKey)
	if err != nil {
		return nil, fmt.Errorf("fullscreenKey 无效: %w", err)
	}

	settings := game.NewSettingsManager(game.OpenStorage(game.AppName))
	paused := settings.GetSettings().Paused || cfg.Paused
	if cfg.Fullscreen {
		settings.SetFullscreen(true)
	}

	a := &App{
		cfg:           bgCfg,
		settings:      settings,
		pauseKey:      pauseKey,
		fullscreenKey: fullscreenKey,
		startPaused:   paused,
		mobile:        host.IsMobile(),
		verbose:       cfg.Verbose,
		host: host.New(host.Options{
			MaxDevicePixelRatio: bgCfg.Render.MaxDevicePixelRatio,
			DisableDevice:       cfg.DisableShader,
		}),
	}

	a.shell, err = shell.New(bgCfg.Shell, paused, a.onToggle)
	if err != nil {
		return nil, err
	}
	a.host.SetClickInterceptor(a.shell.HandleClick)

	log.Printf("[App] Initialized (paused=%v, mobile=%v, persistent settings=%v)", paused, a.mobile, settings.Persistent())
	return a, nil
}

// LoadConfig 加载配置：path 为空时读取嵌入的默认配置
//
// 嵌入资源未初始化时回退到代码中的默认值。
func LoadConfig(path string) (*config.BackgroundConfig, error) {
	if path != "" {
		log.Printf("[Config] Loading %s", path)
		return config.LoadBackgroundConfig(path)
	}

	data, err := embedded.ReadFile(config.DefaultConfigPath)
	if errors.Is(err, embedded.ErrNotInitialized) {
		log.Printf("[Config] Embedded data unavailable, using built-in defaults")
		return config.DefaultBackgroundConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return config.ParseBackgroundConfig(data)
}

// mount 在游戏循环启动后挂载背景（着色器需要图形上下文）
func (a *App) mount() {
	a.bg = background.Mount(a.host, background.Options{
		MaxDevicePixelRatio: a.cfg.Render.MaxDevicePixelRatio,
	}, a.startPaused)
	a.shell.Attach(a.host)
}

// onToggle 外壳切换暂停状态：同步到渲染器并持久化
func (a *App) onToggle(paused bool) {
	if a.bg != nil {
		a.bg.SetPaused(paused)
	}
	a.settings.SetPaused(paused)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Update 更新页面逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.closed {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}
	if a.bg == nil {
		a.mount()
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if !a.mobile {
		if inpututil.IsKeyJustPressed(a.fullscreenKey) {
			a.toggleFullscreen()
		}
		if inpututil.IsKeyJustPressed(a.pauseKey) {
			a.shell.Toggle()
		}
	}

	a.host.FlushResize()
	a.shell.Layout(a.host.ViewportSize())
	a.host.Poll()
	return nil
}

func (a *App) toggleFullscreen() {
	wasFullscreen := ebiten.IsFullscreen()
	if wasFullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(!wasFullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制页面
// 每帧调用一次，触发背景的帧回调后把画布合成到屏幕
func (a *App) Draw(screen *ebiten.Image) {
	a.host.RunFrames()

	if canvas := a.host.Canvas(); canvas != nil {
		screen.DrawImage(canvas, nil)
	} else {
		screen.Fill(pageColor)
	}
	a.shell.Draw(screen, a.host.Scale())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 控制缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回后备缓冲区尺寸：窗口逻辑尺寸乘以受限的设备像素比
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.host.Layout(outsideWidth, outsideHeight, host.DeviceScaleFactor())
}

// Close 卸载背景、释放设备并保存设置，可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.bg != nil {
		a.bg.Unmount()
	}
	a.shell.Detach()
	a.host.ReleaseDevice()
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	log.Printf("[App] Closed")
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// BackgroundConfig 返回生效的配置
func (a *App) BackgroundConfig() *config.BackgroundConfig {
	return a.cfg
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Package shell 实现背景之上的页面外壳：右上角的暂停/播放切换按钮
//
// 外壳拥有 paused 标志，切换时通知回调（背景渲染器与设置持久化），
// 按钮位于背景之上，命中按钮的点击不会产生涟漪。
package shell

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/ripple/pkg/config"
	"github.com/gonewx/ripple/pkg/platform"
)

// 按钮布局（逻辑像素）
const (
	ButtonMargin   = 16.0
	ButtonPaddingX = 12.0
	ButtonPaddingY = 6.0
	ButtonBorder   = 1.0
)

var (
	buttonFill      = color.RGBA{R: 10, G: 12, B: 20, A: 160}
	buttonFillHover = color.RGBA{R: 30, G: 36, B: 60, A: 200}
	buttonStroke    = color.RGBA{R: 120, G: 140, B: 200, A: 180}
	labelColor      = color.RGBA{R: 230, G: 230, B: 240, A: 255}
)

// Rect 逻辑像素矩形
type Rect struct {
	X, Y, W, H float64
}

// Contains 报告点是否落在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ToggleFunc paused 状态变化回调
type ToggleFunc func(paused bool)

// Shell 页面外壳
type Shell struct {
	cfg      config.ShellConfig
	paused   bool
	onToggle ToggleFunc

	source *text.GoTextFaceSource
	face   *text.GoTextFace

	// screenFace 按屏幕缩放后的字体，Draw 时按需重建
	screenFace  *text.GoTextFace
	screenScale float64

	button   Rect
	hovered  bool
	viewport [2]int
	subs     []platform.Subscription
}

// New 创建外壳
//
// 参数：
//   - cfg: 按钮文案与字号
//   - paused: 初始暂停状态
//   - onToggle: 状态变化回调，可为 nil
func New(cfg config.ShellConfig, paused bool, onToggle ToggleFunc) (*Shell, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load shell font: %w", err)
	}
	s := &Shell{
		cfg:      cfg,
		paused:   paused,
		onToggle: onToggle,
		source:   source,
		face:     &text.GoTextFace{Source: source, Size: cfg.FontSize},
	}
	return s, nil
}

// Attach 订阅指针移动以跟踪悬停状态
func (s *Shell) Attach(events platform.Events) {
	s.subs = append(s.subs, events.OnPointerMove(func(ev platform.PointerEvent) {
		s.hovered = s.visible() && s.button.Contains(ev.ClientX, ev.ClientY)
	}))
}

// Detach 取消全部订阅
func (s *Shell) Detach() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

// Paused 返回当前暂停状态
func (s *Shell) Paused() bool {
	return s.paused
}

// SetPaused 设置暂停状态，变化时通知回调
func (s *Shell) SetPaused(paused bool) {
	if s.paused == paused {
		return
	}
	s.paused = paused
	log.Printf("[Shell] Background paused=%v", paused)
	if s.onToggle != nil {
		s.onToggle(paused)
	}
	// 文案宽度随状态变化
	s.Layout(s.viewport[0], s.viewport[1])
}

// Toggle 切换暂停状态
func (s *Shell) Toggle() {
	s.SetPaused(!s.paused)
}

// Label 返回按钮当前文案：运行中显示暂停，暂停中显示播放
func (s *Shell) Label() string {
	if s.paused {
		return s.cfg.PlayLabel
	}
	return s.cfg.PauseLabel
}

// Layout 根据视口尺寸（逻辑像素）计算按钮位置，按钮贴右上角
func (s *Shell) Layout(viewportWidth, viewportHeight int) {
	s.viewport = [2]int{viewportWidth, viewportHeight}
	textWidth, textHeight := text.Measure(s.Label(), s.face, 0)
	w := textWidth + 2*ButtonPaddingX
	h := textHeight + 2*ButtonPaddingY
	s.button = Rect{
		X: float64(viewportWidth) - ButtonMargin - w,
		Y: ButtonMargin,
		W: w,
		H: h,
	}
}

// Button 返回按钮矩形（逻辑像素）
func (s *Shell) Button() Rect {
	return s.button
}

// Hovered 报告指针是否悬停在按钮上
func (s *Shell) Hovered() bool {
	return s.hovered
}

func (s *Shell) visible() bool {
	return s.cfg.ShowToggle
}

// HandleClick 点击拦截：命中按钮时切换状态并消费该点击
func (s *Shell) HandleClick(ev platform.PointerEvent) bool {
	if !s.visible() || !s.button.Contains(ev.ClientX, ev.ClientY) {
		return false
	}
	s.Toggle()
	return true
}

// Draw 在屏幕上绘制按钮，scale 为屏幕像素与逻辑像素的比例
func (s *Shell) Draw(screen *ebiten.Image, scale float64) {
	if !s.visible() {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	if s.screenFace == nil || s.screenScale != scale {
		s.screenFace = &text.GoTextFace{Source: s.source, Size: s.cfg.FontSize * scale}
		s.screenScale = scale
	}

	b := s.button
	x, y := float32(b.X*scale), float32(b.Y*scale)
	w, h := float32(b.W*scale), float32(b.H*scale)

	fill := buttonFill
	if s.hovered {
		fill = buttonFillHover
	}
	vector.DrawFilledRect(screen, x, y, w, h, fill, true)
	vector.StrokeRect(screen, x, y, w, h, float32(ButtonBorder*scale), buttonStroke, true)

	op := &text.DrawOptions{}
	op.GeoM.Translate((b.X+ButtonPaddingX)*scale, (b.Y+ButtonPaddingY)*scale)
	op.ColorScale.ScaleWithColor(labelColor)
	text.Draw(screen, s.Label(), s.screenFace, op)
}

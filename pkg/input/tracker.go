// Package input 把指针事件转换成着色器使用的归一化状态
//
// 指针移动只保留最新位置；点击被记录为带时间戳的涟漪，
// 时间相对于动画纪元。y 轴翻转，因为着色器坐标原点在左下角。
package input

import (
	"time"

	"github.com/gonewx/ripple/pkg/platform"
)

// PointerState 最新的归一化指针位置
type PointerState struct {
	X, Y float64
}

// Normalize 把客户端坐标映射到表面的 [0,1]×[0,1]
//
//	x = (clientX - left) / width
//	y = 1 - (clientY - top) / height
//
// 表面尺寸为 0 时返回中心点 (0.5, 0.5)。
func Normalize(clientX, clientY float64, b platform.Bounds) (x, y float64) {
	if b.Width <= 0 || b.Height <= 0 {
		return 0.5, 0.5
	}
	x = (clientX - b.Left) / b.Width
	y = 1 - (clientY - b.Top)/b.Height
	return x, y
}

// Tracker 跟踪指针位置和点击涟漪
type Tracker struct {
	epoch   time.Duration
	pointer PointerState
	ripples RippleRing
}

// NewTracker 创建跟踪器，epoch 为动画纪元
// 指针初始位于表面中心
func NewTracker(epoch time.Duration) *Tracker {
	return &Tracker{
		epoch:   epoch,
		pointer: PointerState{X: 0.5, Y: 0.5},
	}
}

// Epoch 返回动画纪元
func (t *Tracker) Epoch() time.Duration {
	return t.epoch
}

// Move 处理指针移动
func (t *Tracker) Move(ev platform.PointerEvent) {
	x, y := Normalize(ev.ClientX, ev.ClientY, ev.Surface)
	t.pointer = PointerState{X: x, Y: y}
}

// Click 处理点击，now 为点击时的时钟读数
func (t *Tracker) Click(ev platform.PointerEvent, now time.Duration) ClickRipple {
	x, y := Normalize(ev.ClientX, ev.ClientY, ev.Surface)
	c := ClickRipple{X: x, Y: y, T: (now - t.epoch).Seconds()}
	t.ripples.Push(c)
	return c
}

// Pointer 返回最新指针位置
func (t *Tracker) Pointer() PointerState {
	return t.pointer
}

// Ripples 返回涟漪副本，从旧到新
func (t *Tracker) Ripples() []ClickRipple {
	return t.ripples.AppendTo(make([]ClickRipple, 0, t.ripples.Len()))
}

// Ring 返回底层环形缓冲区（只读使用）
func (t *Tracker) Ring() *RippleRing {
	return &t.ripples
}

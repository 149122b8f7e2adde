// Package surface 负责绘图表面的尺寸计算
//
// 后备缓冲区尺寸 = floor(min(设备像素比, 上限) × 视口尺寸)。
// 限制像素比可以避免高密度屏幕上片元着色器的开销成倍增长。
// CSS 可见尺寸始终是未缩放的视口尺寸。
package surface

import (
	"log"
	"math"
)

// MaxDevicePixelRatio 默认的设备像素比上限
const MaxDevicePixelRatio = 2.0

// Size 一次尺寸同步的结果
type Size struct {
	// CSSWidth, CSSHeight 可见尺寸（逻辑像素，未缩放）
	CSSWidth, CSSHeight int
	// BackingWidth, BackingHeight 后备缓冲区像素尺寸
	BackingWidth, BackingHeight int
	// Ratio 实际使用的（已封顶的）像素比
	Ratio float64
}

// Resolution 返回 resolution uniform 的值，始终等于后备缓冲区尺寸
func (s Size) Resolution() [2]float32 {
	return [2]float32{float32(s.BackingWidth), float32(s.BackingHeight)}
}

// Surface 记录当前绘图表面尺寸
type Surface struct {
	maxRatio float64
	size     Size
}

// New 创建表面，maxRatio <= 0 时使用 MaxDevicePixelRatio
func New(maxRatio float64) *Surface {
	if maxRatio <= 0 {
		maxRatio = MaxDevicePixelRatio
	}
	return &Surface{maxRatio: maxRatio}
}

// CappedRatio 返回 min(dpr, maxRatio)，非正值或 NaN 视为 1
func (s *Surface) CappedRatio(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	return math.Min(dpr, s.maxRatio)
}

// Resize 根据视口尺寸和设备像素比重新计算尺寸
//
// 返回新尺寸以及尺寸是否发生变化。视口的负值被视为 0。
func (s *Surface) Resize(viewportWidth, viewportHeight int, dpr float64) (Size, bool) {
	viewportWidth = max(viewportWidth, 0)
	viewportHeight = max(viewportHeight, 0)

	ratio := s.CappedRatio(dpr)
	next := Size{
		CSSWidth:      viewportWidth,
		CSSHeight:     viewportHeight,
		BackingWidth:  int(math.Floor(float64(viewportWidth) * ratio)),
		BackingHeight: int(math.Floor(float64(viewportHeight) * ratio)),
		Ratio:         ratio,
	}

	changed := next != s.size
	s.size = next
	if changed {
		log.Printf("[Surface] Resized: css=%dx%d backing=%dx%d ratio=%.2f",
			next.CSSWidth, next.CSSHeight, next.BackingWidth, next.BackingHeight, next.Ratio)
	}
	return next, changed
}

// Size 返回当前尺寸
func (s *Surface) Size() Size {
	return s.size
}

// MaxRatio 返回像素比上限
func (s *Surface) MaxRatio() float64 {
	return s.maxRatio
}

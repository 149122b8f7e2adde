package shader

import "github.com/gonewx/ripple/pkg/input"

// MaxClicks 着色器 Clicks 数组长度
const MaxClicks = input.MaxRipples

// Uniforms 一帧上传给着色器的全部值
type Uniforms struct {
	Time       float32
	Resolution [2]float32
	Mouse      [2]float32
	// Clicks 按 x, y, t 排列，未使用的条目为 0
	Clicks     [MaxClicks * 3]float32
	ClickCount int
}

// NewUniforms 由输入状态组装 uniform
// ripples 超过 MaxClicks 时只取最新的 MaxClicks 条
func NewUniforms(elapsed float64, resolution [2]float32, pointer input.PointerState, ripples []input.ClickRipple) Uniforms {
	if len(ripples) > MaxClicks {
		ripples = ripples[len(ripples)-MaxClicks:]
	}

	u := Uniforms{
		Time:       float32(elapsed),
		Resolution: resolution,
		Mouse:      [2]float32{float32(pointer.X), float32(pointer.Y)},
		ClickCount: len(ripples),
	}
	for i, c := range ripples {
		u.Clicks[i*3+0] = float32(c.X)
		u.Clicks[i*3+1] = float32(c.Y)
		u.Clicks[i*3+2] = float32(c.T)
	}
	return u
}

// values 返回 uniform 名到上传值的映射
func (u Uniforms) values() map[string]any {
	return map[string]any{
		UniformTime:       u.Time,
		UniformResolution: []float32{u.Resolution[0], u.Resolution[1]},
		UniformMouse:      []float32{u.Mouse[0], u.Mouse[1]},
		UniformClicks:     u.Clicks[:],
		UniformClickCount: u.ClickCount,
	}
}

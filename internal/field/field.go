// Package field 在 CPU 上计算涟漪/噪声场
//
// 数学与 pkg/shader/ripple.kage 完全一致，用于离屏预览和测试：
// 给定 uniform 和片元坐标（左下角原点，像素中心）返回线性 RGB。
package field

import (
	"math"

	"github.com/gonewx/ripple/pkg/shader"
)

type vec2 struct{ x, y float64 }

// Color 线性 RGB，分量通常在 [0,1)
type Color struct{ R, G, B float64 }

func (c Color) add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) scale(s float64) Color { return Color{c.R * s, c.G * s, c.B * s} }
func mixColor(a, b Color, t float64) Color { return a.scale(1 - t).add(b.scale(t)) }

func fract(x float64) float64 { return x - math.Floor(x) }

func mix(a, b, t float64) float64 { return a*(1-t) + b*t }

// smoothstep 与 GLSL 公式相同，允许 edge0 > edge1
func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

func hash(p vec2) float64 {
	return fract(math.Sin(p.x*127.1+p.y*311.7) * 43758.5453123)
}

// Noise 二维值噪声
func Noise(x, y float64) float64 {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := fract(x), fract(y)

	a := hash(vec2{ix, iy})
	b := hash(vec2{ix + 1, iy})
	c := hash(vec2{ix, iy + 1})
	d := hash(vec2{ix + 1, iy + 1})

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)
	return mix(a, b, ux) + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}

var (
	colA       = Color{0.02, 0.02, 0.07}
	colB       = Color{0.03, 0.05, 0.15}
	glowTint   = Color{0.02, 0.03, 0.05}
	rippleTint = Color{0.06, 0.08, 0.12}
)

// Ripple 单个涟漪在距离 dist、年龄 age 处的振幅
// 年龄不为正时为 0
func Ripple(dist, age float64) float64 {
	if age <= 0 {
		return 0
	}
	return 0.03 * (math.Sin(20*dist-age*6) * math.Exp(-6*dist) * smoothstep(0, 1, 1.2-age*0.35))
}

// Eval 计算片元 (fx, fy) 的颜色
func Eval(fx, fy float64, u shader.Uniforms) Color {
	resX, resY := float64(u.Resolution[0]), float64(u.Resolution[1])
	if resX <= 0 || resY <= 0 {
		return Color{}
	}
	t := float64(u.Time)

	uv := vec2{fx / resX, fy / resY}
	p := vec2{(fx - 0.5*resX) / resY, (fy - 0.5*resY) / resY}
	p.x += (float64(u.Mouse[0]) - 0.5) * 0.1
	p.y += (float64(u.Mouse[1]) - 0.5) * 0.1

	base := mixColor(colA, colB, uv.y+0.1*math.Sin(t*0.1))

	band := 0.15*math.Sin(uv.y*6+t*0.6) + 0.15*math.Sin(uv.x*8-t*0.4)
	n := Noise(uv.x*6+t*0.05, uv.y*6+t*0.05)
	glow := smoothstep(0.2, 0.9, band+n*0.6)

	col := base.add(glowTint.scale(glow))

	count := min(max(u.ClickCount, 0), shader.MaxClicks)
	for i := 0; i < count; i++ {
		cx := float64(u.Clicks[i*3])
		cy := float64(u.Clicks[i*3+1])
		t0 := float64(u.Clicks[i*3+2])
		dist := math.Hypot(cx-uv.x, cy-uv.y)
		col = col.add(rippleTint.scale(Ripple(dist, t-t0)))
	}

	vg := smoothstep(1.2, 0.2, math.Hypot(p.x, p.y))
	return col.scale(vg)
}

// Clamp01 把颜色分量限制到 [0,1]
func (c Color) Clamp01() Color {
	cl := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	return Color{cl(c.R), cl(c.G), cl(c.B)}
}

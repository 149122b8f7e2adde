// Package preview 在没有 GPU 的环境下离屏渲染背景快照
//
// 它在 CPU 上逐像素求值涟漪场（internal/field），
// 写入 gogpu/gg 的软件绘图上下文，可导出为 PNG。
// 用于 cmd/snapshot 以及对着色器数学做回归检查。
package preview

import (
	"fmt"
	"image"
	"log"

	"github.com/gogpu/gg"

	"github.com/gonewx/ripple/internal/field"
	"github.com/gonewx/ripple/pkg/input"
	"github.com/gonewx/ripple/pkg/shader"
)

// Scene 一张快照的参数
type Scene struct {
	Width, Height int
	// Time 距动画纪元的秒数
	Time    float64
	Pointer input.PointerState
	Ripples []input.ClickRipple
}

// Uniforms 返回该场景对应的 uniform
func (s Scene) Uniforms() shader.Uniforms {
	return shader.NewUniforms(s.Time, [2]float32{float32(s.Width), float32(s.Height)}, s.Pointer, s.Ripples)
}

// Render 渲染场景，返回的上下文需要调用方 Close
func Render(s Scene) (*gg.Context, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", s.Width, s.Height)
	}

	u := s.Uniforms()
	dc := gg.NewContext(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		// 图像行从上往下，片元坐标从下往上
		fy := float64(s.Height-1-y) + 0.5
		for x := 0; x < s.Width; x++ {
			c := field.Eval(float64(x)+0.5, fy, u).Clamp01()
			dc.SetPixel(x, y, gg.RGB(c.R, c.G, c.B))
		}
	}
	return dc, nil
}

// Image 渲染场景并返回图像
func Image(s Scene) (image.Image, error) {
	dc, err := Render(s)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// SavePNG 渲染场景并保存为 PNG
func SavePNG(s Scene, path string) error {
	dc, err := Render(s)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	log.Printf("[Preview] Saved %dx%d snapshot at t=%.2fs to %s", s.Width, s.Height, s.Time, path)
	return nil
}

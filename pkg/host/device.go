package host

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ripple/pkg/platform"
)

// Device 基于 Ebitengine 的着色器设备
//
// 绘制目标是一张离屏画布（后备缓冲区），它的内容在暂停期间保持不变，
// 由 App 每帧合成到屏幕上。改变视口尺寸会重新分配画布（内容清空）。
type Device struct {
	canvas   *ebiten.Image
	shaders  []*ebiten.Shader
	vertices []ebiten.Vertex
	indices  []uint16
	released bool
	draws    uint64
}

// CompileFragment 实现 platform.Device，编译 Kage 源码
func (d *Device) CompileFragment(src []byte) (platform.Shader, error) {
	if d.released {
		return nil, fmt.Errorf("device released")
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	d.shaders = append(d.shaders, sh)
	return sh, nil
}

// SetViewport 实现 platform.Device
func (d *Device) SetViewport(width, height int) {
	if d.released {
		return
	}
	// ebiten.NewImage 要求正尺寸
	width, height = max(width, 1), max(height, 1)
	if d.canvas != nil {
		b := d.canvas.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		d.canvas.Deallocate()
	}
	d.canvas = ebiten.NewImage(width, height)
	log.Printf("[Device] Canvas allocated: %dx%d", width, height)
}

// DrawTriangles 实现 platform.Device
//
// 裁剪空间坐标映射到画布像素：x 向右，y 向上翻转为向下。
func (d *Device) DrawTriangles(vertices []platform.Vertex, sh platform.Shader, uniforms map[string]any) {
	if d.released || d.canvas == nil {
		return
	}
	shader, ok := sh.(*ebiten.Shader)
	if !ok || shader == nil {
		return
	}

	b := d.canvas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	d.vertices = d.vertices[:0]
	d.indices = d.indices[:0]
	for i, v := range vertices {
		d.vertices = append(d.vertices, ebiten.Vertex{
			DstX:   (v.X + 1) / 2 * w,
			DstY:   (1 - v.Y) / 2 * h,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
		d.indices = append(d.indices, uint16(i))
	}

	op := &ebiten.DrawTrianglesShaderOptions{Uniforms: uniforms}
	d.canvas.DrawTrianglesShader(d.vertices, d.indices, shader, op)
	d.draws++
}

// Release 实现 platform.Device
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	for _, sh := range d.shaders {
		sh.Deallocate()
	}
	d.shaders = nil
	if d.canvas != nil {
		d.canvas.Deallocate()
		d.canvas = nil
	}
	log.Printf("[Device] Released after %d draws", d.draws)
}

// Canvas 返回离屏画布，未设置视口或已释放时为 nil
func (d *Device) Canvas() *ebiten.Image {
	return d.canvas
}

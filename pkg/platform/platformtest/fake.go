// Package platformtest 提供 platform.Platform 的内存假实现，用于单元测试
//
// Fake 用手动推进的时钟和显式的 Frame() 调用模拟显示刷新，
// FakeDevice 记录每一次视口设置和绘制调用及其 uniform。
package platformtest

import (
	"errors"
	"sort"
	"time"

	"github.com/gonewx/ripple/pkg/platform"
)

// DrawCall 一次记录下来的绘制调用
type DrawCall struct {
	Vertices []platform.Vertex
	Uniforms map[string]any
}

// FakeDevice 记录调用的假设备
type FakeDevice struct {
	// CompileErr 非 nil 时 CompileFragment 返回该错误
	CompileErr error

	Compiled  [][]byte
	Viewports [][2]int
	Draws     []DrawCall
	Released  bool
}

type fakeShader struct {
	src []byte
}

// CompileFragment 实现 platform.Device
func (d *FakeDevice) CompileFragment(src []byte) (platform.Shader, error) {
	d.Compiled = append(d.Compiled, src)
	if d.CompileErr != nil {
		return nil, d.CompileErr
	}
	return &fakeShader{src: src}, nil
}

// SetViewport 实现 platform.Device
func (d *FakeDevice) SetViewport(width, height int) {
	d.Viewports = append(d.Viewports, [2]int{width, height})
}

// DrawTriangles 实现 platform.Device
func (d *FakeDevice) DrawTriangles(vertices []platform.Vertex, sh platform.Shader, uniforms map[string]any) {
	if d.Released {
		panic("platformtest: draw after release")
	}
	copied := make(map[string]any, len(uniforms))
	for k, v := range uniforms {
		copied[k] = v
	}
	d.Draws = append(d.Draws, DrawCall{Vertices: vertices, Uniforms: copied})
}

// Release 实现 platform.Device
func (d *FakeDevice) Release() {
	d.Released = true
}

// LastDraw 返回最后一次绘制调用
func (d *FakeDevice) LastDraw() (DrawCall, bool) {
	if len(d.Draws) == 0 {
		return DrawCall{}, false
	}
	return d.Draws[len(d.Draws)-1], true
}

// Fake 可手动驱动的平台
type Fake struct {
	// Device 由 AcquireDevice 返回；为 nil 时返回 ErrContextUnavailable
	Device *FakeDevice

	Width, Height int
	Ratio         float64

	now        time.Duration
	nextHandle platform.FrameHandle
	pending    map[platform.FrameHandle]platform.FrameCallback
	cancels    int

	resize platform.Listeners[struct{}]
	move   platform.Listeners[platform.PointerEvent]
	click  platform.Listeners[platform.PointerEvent]
}

// New 创建视口为 width×height、设备像素比为 ratio 的假平台
func New(width, height int, ratio float64) *Fake {
	return &Fake{
		Device:  &FakeDevice{},
		Width:   width,
		Height:  height,
		Ratio:   ratio,
		pending: make(map[platform.FrameHandle]platform.FrameCallback),
	}
}

// AcquireDevice 实现 platform.Platform
func (f *Fake) AcquireDevice() (platform.Device, error) {
	if f.Device == nil {
		return nil, platform.ErrContextUnavailable
	}
	return f.Device, nil
}

// Now 实现 platform.Clock
func (f *Fake) Now() time.Duration { return f.now }

// Advance 推进时钟
func (f *Fake) Advance(d time.Duration) { f.now += d }

// ViewportSize 实现 platform.Display
func (f *Fake) ViewportSize() (int, int) { return f.Width, f.Height }

// DevicePixelRatio 实现 platform.Display
func (f *Fake) DevicePixelRatio() float64 { return f.Ratio }

// RequestFrame 实现 platform.Scheduler
func (f *Fake) RequestFrame(cb platform.FrameCallback) platform.FrameHandle {
	f.nextHandle++
	f.pending[f.nextHandle] = cb
	return f.nextHandle
}

// CancelFrame 实现 platform.Scheduler
func (f *Fake) CancelFrame(h platform.FrameHandle) {
	if _, ok := f.pending[h]; ok {
		delete(f.pending, h)
		f.cancels++
	}
}

// Pending 返回尚未触发的帧回调数量
func (f *Fake) Pending() int { return len(f.pending) }

// Cancels 返回实际取消掉的帧回调数量
func (f *Fake) Cancels() int { return f.cancels }

// Frame 模拟一次显示刷新：先推进 step，再按调度顺序触发当前所有挂起回调
// 回调内新调度的帧留到下一次 Frame
func (f *Fake) Frame(step time.Duration) int {
	f.now += step
	handles := make([]platform.FrameHandle, 0, len(f.pending))
	for h := range f.pending {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	fired := 0
	for _, h := range handles {
		cb, ok := f.pending[h]
		if !ok {
			continue
		}
		delete(f.pending, h)
		cb(f.now)
		fired++
	}
	return fired
}

// OnResize 实现 platform.Events
func (f *Fake) OnResize(fn func()) platform.Subscription {
	return f.resize.Add(func(struct{}) { fn() })
}

// OnPointerMove 实现 platform.Events
func (f *Fake) OnPointerMove(fn func(platform.PointerEvent)) platform.Subscription {
	return f.move.Add(fn)
}

// OnClick 实现 platform.Events
func (f *Fake) OnClick(fn func(platform.PointerEvent)) platform.Subscription {
	return f.click.Add(fn)
}

// Resize 改变视口并通知监听器
func (f *Fake) Resize(width, height int, ratio float64) {
	f.Width, f.Height, f.Ratio = width, height, ratio
	f.resize.Emit(struct{}{})
}

// Move 在整个视口作为表面的情况下派发指针移动
func (f *Fake) Move(x, y float64) {
	f.move.Emit(f.event(x, y))
}

// Click 在整个视口作为表面的情况下派发点击
func (f *Fake) Click(x, y float64) {
	f.click.Emit(f.event(x, y))
}

func (f *Fake) event(x, y float64) platform.PointerEvent {
	return platform.PointerEvent{
		ClientX: x,
		ClientY: y,
		Surface: platform.Bounds{Width: float64(f.Width), Height: float64(f.Height)},
	}
}

// Listeners 返回 resize、move、click 三类监听器的当前数量
func (f *Fake) Listeners() (resize, move, click int) {
	return f.resize.Len(), f.move.Len(), f.click.Len()
}

// ErrCompile 测试用的编译错误
var ErrCompile = errors.New("platformtest: compile failed")

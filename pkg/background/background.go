// Package background 实现着色器驱动的动画背景
//
// Background 是一个渲染器实例：挂载时获取绘图设备、构建程序、
// 同步表面尺寸、订阅事件、记录动画纪元并启动帧驱动；
// 卸载时按相反顺序释放所有资源。所有句柄都是实例字段，
// 实例之间不共享任何状态。
//
// 宿主通过 SetPaused 传入暂停标志，这是唯一的控制面。
package background

import (
	"errors"
	"log"
	"time"

	"github.com/gonewx/ripple/pkg/frame"
	"github.com/gonewx/ripple/pkg/input"
	"github.com/gonewx/ripple/pkg/platform"
	"github.com/gonewx/ripple/pkg/shader"
	"github.com/gonewx/ripple/pkg/surface"
)

// Options 挂载选项
type Options struct {
	// MaxDevicePixelRatio 像素比上限，<= 0 时使用 surface.MaxDevicePixelRatio
	MaxDevicePixelRatio float64
	// Source 着色器源，零值时使用 shader.DefaultSource()
	Source shader.Source
}

// Background 动画背景实例
type Background struct {
	platform platform.Platform
	device   platform.Device
	program  *shader.Program
	surface  *surface.Surface
	tracker  *input.Tracker
	driver   *frame.Driver
	epoch    time.Duration

	subscriptions []platform.Subscription
	lastUniforms  shader.Uniforms
	draws         uint64
	mounted       bool
}

// Mount 创建并启动背景
//
// 设备不可用时返回一个惰性实例：不动画、不报错，Unmount 仍然安全。
func Mount(p platform.Platform, opts Options, paused bool) *Background {
	b := &Background{
		platform: p,
		surface:  surface.New(opts.MaxDevicePixelRatio),
		mounted:  true,
	}

	dev, err := p.AcquireDevice()
	if err != nil || dev == nil {
		if err == nil {
			err = platform.ErrContextUnavailable
		}
		if errors.Is(err, platform.ErrContextUnavailable) {
			log.Printf("[Background] Drawing context unavailable, background disabled")
		} else {
			log.Printf("[Background] Failed to acquire drawing context: %v (background disabled)", err)
		}
		return b
	}
	b.device = dev

	src := opts.Source
	if src.Fragment == nil && src.Vertices == nil {
		src = shader.DefaultSource()
	}
	b.program = shader.Build(dev, src)

	b.epoch = p.Now()
	b.tracker = input.NewTracker(b.epoch)

	b.resize()
	b.subscriptions = append(b.subscriptions,
		p.OnResize(b.resize),
		p.OnPointerMove(b.onMove),
		p.OnClick(b.onClick),
	)

	b.driver = frame.NewDriver(p, b.tick, paused)
	b.driver.Start()

	log.Printf("[Background] Mounted (paused=%v, program usable=%v)", paused, b.program.Usable())
	return b
}

// SetPaused 传入宿主的暂停标志；重复设置相同的值没有副作用
func (b *Background) SetPaused(paused bool) {
	if b.driver == nil || !b.mounted {
		return
	}
	b.driver.SetPaused(paused)
}

// Unmount 取消挂起的帧、注销全部监听器并释放设备
// 可重复调用，惰性实例也可以调用
func (b *Background) Unmount() {
	if !b.mounted {
		return
	}
	b.mounted = false

	if b.driver != nil {
		b.driver.Stop()
	}
	for _, s := range b.subscriptions {
		s.Cancel()
	}
	b.subscriptions = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	log.Printf("[Background] Unmounted after %d draws", b.draws)
}

// resize 同步表面尺寸、设备视口和 resolution uniform
func (b *Background) resize() {
	w, h := b.platform.ViewportSize()
	size, _ := b.surface.Resize(w, h, b.platform.DevicePixelRatio())
	if b.device != nil {
		b.device.SetViewport(size.BackingWidth, size.BackingHeight)
	}
	b.lastUniforms.Resolution = size.Resolution()
}

func (b *Background) onMove(ev platform.PointerEvent) {
	b.tracker.Move(ev)
}

func (b *Background) onClick(ev platform.PointerEvent) {
	b.tracker.Click(ev, b.platform.Now())
}

// tick 一帧的工作：先上传全部 uniform，再发出一次绘制调用
func (b *Background) tick(now time.Duration) {
	elapsed := (now - b.epoch).Seconds()
	u := shader.NewUniforms(elapsed, b.surface.Size().Resolution(), b.tracker.Pointer(), b.tracker.Ripples())
	b.lastUniforms = u
	if b.program.Draw(b.device, u) {
		b.draws++
	}
}

// Active 报告背景是否拥有绘图设备且可绘制
func (b *Background) Active() bool {
	return b.mounted && b.device != nil && b.program != nil && b.program.Usable()
}

// Mounted 报告实例是否仍处于挂载状态
func (b *Background) Mounted() bool {
	return b.mounted
}

// Paused 报告帧驱动是否处于 SUSPENDED
func (b *Background) Paused() bool {
	return b.driver == nil || b.driver.State() == frame.Suspended
}

// State 返回帧驱动状态；惰性实例始终为 SUSPENDED
func (b *Background) State() frame.State {
	if b.driver == nil {
		return frame.Suspended
	}
	return b.driver.State()
}

// Epoch 返回动画纪元
func (b *Background) Epoch() time.Duration {
	return b.epoch
}

// Size 返回当前表面尺寸
func (b *Background) Size() surface.Size {
	return b.surface.Size()
}

// Pointer 返回最新指针状态
func (b *Background) Pointer() input.PointerState {
	if b.tracker == nil {
		return input.PointerState{X: 0.5, Y: 0.5}
	}
	return b.tracker.Pointer()
}

// Ripples 返回当前跟踪的涟漪
func (b *Background) Ripples() []input.ClickRipple {
	if b.tracker == nil {
		return nil
	}
	return b.tracker.Ripples()
}

// LastUniforms 返回最近一帧上传的 uniform
func (b *Background) LastUniforms() shader.Uniforms {
	return b.lastUniforms
}

// Draws 返回已发出的绘制调用数
func (b *Background) Draws() uint64 {
	return b.draws
}

// Program 返回着色器程序；惰性实例返回 nil
func (b *Background) Program() *shader.Program {
	return b.program
}

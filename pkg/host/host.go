// Package host 用 Ebitengine 实现 platform.Platform
//
// Ebitengine 的游戏循环提供三个入口：Layout 报告窗口尺寸，Update 以固定 TPS 运行，
// Draw 随显示刷新调用。Host 把它们翻译成渲染器需要的平台语义：
//   - Layout 检测视口或设备像素比变化，在下一次 Update 派发 resize 事件
//   - Update 轮询鼠标/触摸，派发指针移动和点击
//   - Draw 触发所有已调度的帧回调（requestAnimationFrame 语义）
//
// 所有方法都在游戏循环 goroutine 中调用。
package host

import (
	"log"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ripple/pkg/platform"
	"github.com/gonewx/ripple/pkg/surface"
)

// Options Host 配置
type Options struct {
	// MaxDevicePixelRatio 后备缓冲区像素比上限，<= 0 时使用 surface.MaxDevicePixelRatio
	MaxDevicePixelRatio float64
	// DisableDevice 为 true 时 AcquireDevice 总是失败（无着色器环境）
	DisableDevice bool
}

// ClickInterceptor 在点击派发给绘图表面之前调用，返回 true 表示点击已被消费
type ClickInterceptor func(ev platform.PointerEvent) bool

type pendingFrame struct {
	handle platform.FrameHandle
	cb     platform.FrameCallback
}

// Host Ebitengine 平台实现
type Host struct {
	start         time.Time
	clock         func() time.Duration
	disableDevice bool

	screen    *surface.Surface
	width     int
	height    int
	ratio     float64
	resizeDue bool

	nextHandle platform.FrameHandle
	frames     []pendingFrame
	running    []pendingFrame

	resize    platform.Listeners[struct{}]
	move      platform.Listeners[platform.PointerEvent]
	click     platform.Listeners[platform.PointerEvent]
	intercept ClickInterceptor

	cursorX, cursorY float64
	hasCursor        bool

	// 触摸输入跟踪，见 Sample
	mobile         bool
	touching       bool
	staleX, staleY int
	hasStale       bool

	device *Device
}

// New 创建 Host
func New(opts Options) *Host {
	h := &Host{
		start:         time.Now(),
		disableDevice: opts.DisableDevice,
		screen:        surface.New(opts.MaxDevicePixelRatio),
		ratio:         1,
		mobile:        IsMobile(),
	}
	h.clock = func() time.Duration { return time.Since(h.start) }
	return h
}

// AcquireDevice 实现 platform.Platform
//
// 重新挂载时先释放上一个设备的画布和着色器。
func (h *Host) AcquireDevice() (platform.Device, error) {
	h.ReleaseDevice()
	if h.disableDevice {
		return nil, platform.ErrContextUnavailable
	}
	h.device = &Device{}
	return h.device, nil
}

// Now 实现 platform.Clock
func (h *Host) Now() time.Duration {
	return h.clock()
}

// ViewportSize 实现 platform.Display
func (h *Host) ViewportSize() (int, int) {
	return h.width, h.height
}

// DevicePixelRatio 实现 platform.Display
func (h *Host) DevicePixelRatio() float64 {
	return h.ratio
}

// RequestFrame 实现 platform.Scheduler
func (h *Host) RequestFrame(cb platform.FrameCallback) platform.FrameHandle {
	h.nextHandle++
	h.frames = append(h.frames, pendingFrame{handle: h.nextHandle, cb: cb})
	return h.nextHandle
}

// CancelFrame 实现 platform.Scheduler，未知或已触发的句柄被忽略
func (h *Host) CancelFrame(handle platform.FrameHandle) {
	for i, f := range h.frames {
		if f.handle == handle {
			h.frames = append(h.frames[:i], h.frames[i+1:]...)
			return
		}
	}
	// 本次刷新中尚未触发的回调
	for i := range h.running {
		if h.running[i].handle == handle {
			h.running[i].cb = nil
		}
	}
}

// PendingFrames 返回尚未触发的帧回调数量
func (h *Host) PendingFrames() int {
	return len(h.frames)
}

// OnResize 实现 platform.Events
func (h *Host) OnResize(fn func()) platform.Subscription {
	return h.resize.Add(func(struct{}) { fn() })
}

// OnPointerMove 实现 platform.Events
func (h *Host) OnPointerMove(fn func(platform.PointerEvent)) platform.Subscription {
	return h.move.Add(fn)
}

// OnClick 实现 platform.Events
func (h *Host) OnClick(fn func(platform.PointerEvent)) platform.Subscription {
	return h.click.Add(fn)
}

// SetClickInterceptor 设置点击拦截器（页面外壳的按钮位于背景之上）
func (h *Host) SetClickInterceptor(fn ClickInterceptor) {
	h.intercept = fn
}

// Layout 记录窗口尺寸和设备像素比，返回后备缓冲区（屏幕）尺寸
//
// 尺寸或像素比变化时标记 resize，在下一次 FlushResize 时派发。
func (h *Host) Layout(outsideWidth, outsideHeight int, ratio float64) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height || ratio != h.ratio {
		h.width, h.height, h.ratio = outsideWidth, outsideHeight, ratio
		h.resizeDue = true
	}
	size, _ := h.screen.Resize(h.width, h.height, h.ratio)
	return max(size.BackingWidth, 1), max(size.BackingHeight, 1)
}

// FlushResize 派发挂起的 resize 事件
func (h *Host) FlushResize() bool {
	if !h.resizeDue {
		return false
	}
	h.resizeDue = false
	h.resize.Emit(struct{}{})
	return true
}

// Scale 返回屏幕像素与逻辑像素的比例
func (h *Host) Scale() float64 {
	return h.screen.Size().Ratio
}

// Pointer 处理一次指针采样，坐标为屏幕像素
//
// 位置变化时派发移动；pressed 为 true 时先交给拦截器，未被消费再派发点击。
// 首个未按下的采样只作为基准：指针进入窗口之前 Ebitengine 报告 (0,0)。
func (h *Host) Pointer(screenX, screenY float64, pressed bool) {
	ev := h.event(screenX, screenY)
	moved := pressed
	if h.hasCursor {
		moved = ev.ClientX != h.cursorX || ev.ClientY != h.cursorY
	}
	h.cursorX, h.cursorY, h.hasCursor = ev.ClientX, ev.ClientY, true
	if moved {
		h.move.Emit(ev)
	}
	if !pressed {
		return
	}
	if h.intercept != nil && h.intercept(ev) {
		return
	}
	h.click.Emit(ev)
}

// event 把屏幕像素坐标换算为客户端逻辑像素，绘图表面覆盖整个视口
func (h *Host) event(screenX, screenY float64) platform.PointerEvent {
	scale := h.Scale()
	if scale <= 0 {
		scale = 1
	}
	return platform.PointerEvent{
		ClientX: screenX / scale,
		ClientY: screenY / scale,
		Surface: platform.Bounds{Width: float64(h.width), Height: float64(h.height)},
	}
}

// RunFrames 模拟一次显示刷新：按调度顺序触发当前所有挂起回调
//
// 回调内新调度的帧留到下一次刷新。返回触发的回调数。
func (h *Host) RunFrames() int {
	if len(h.frames) == 0 {
		return 0
	}
	h.running = h.frames
	h.frames = nil
	sort.Slice(h.running, func(i, j int) bool { return h.running[i].handle < h.running[j].handle })

	now := h.Now()
	fired := 0
	for i := range h.running {
		cb := h.running[i].cb
		if cb == nil {
			continue
		}
		h.running[i].cb = nil
		cb(now)
		fired++
	}
	h.running = nil
	return fired
}

// Canvas 返回当前设备的离屏画布，没有设备时为 nil
func (h *Host) Canvas() *ebiten.Image {
	if h.device == nil {
		return nil
	}
	return h.device.Canvas()
}

// ReleaseDevice 放弃对当前设备的引用（背景卸载之后调用）
func (h *Host) ReleaseDevice() {
	if h.device != nil {
		h.device.Release()
		h.device = nil
		log.Printf("[Host] Device detached")
	}
}

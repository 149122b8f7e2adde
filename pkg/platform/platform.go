// Package platform 定义背景渲染器所消费的宿主平台能力
//
// 渲染器本身不直接依赖 Ebitengine：它只通过本包中的接口获取
// 绘图设备、显示刷新同步的调度、单调时钟、视口信息和事件订阅。
// 桌面端/移动端由 pkg/host 实现这些接口，测试由 platformtest 提供假实现。
//
// 所有回调都在同一个 goroutine（游戏循环）中调用，因此接口实现无需加锁。
package platform

import (
	"errors"
	"time"
)

// ErrContextUnavailable 宿主环境无法提供可运行着色器的绘图上下文
var ErrContextUnavailable = errors.New("shader-capable drawing context unavailable")

// Vertex 全屏四边形的一个顶点，坐标为裁剪空间 [-1,1]
type Vertex struct {
	X, Y float32
}

// Shader 已编译的片元着色器句柄
//
// 具体类型由 Device 实现决定（例如 *ebiten.Shader）。
type Shader interface{}

// Device 着色器绘图设备
//
// 对应浏览器里的 WebGL 上下文：编译片元阶段、设置视口、
// 发出绘制调用以及在卸载时释放。
type Device interface {
	// CompileFragment 编译片元着色器源码，失败时返回包含诊断信息的错误
	CompileFragment(src []byte) (Shader, error)

	// SetViewport 设置绘制目标的像素尺寸（后备缓冲区尺寸）
	SetViewport(width, height int)

	// DrawTriangles 使用给定的顶点、着色器和 uniform 发出一次绘制调用
	// uniform 键为着色器中的变量名
	DrawTriangles(vertices []Vertex, sh Shader, uniforms map[string]any)

	// Release 释放设备持有的资源，之后设备不再可用
	Release()
}

// FrameHandle 已调度的帧回调句柄
type FrameHandle uint64

// FrameCallback 显示刷新回调，参数为回调触发时的单调时钟读数
type FrameCallback func(now time.Duration)

// Scheduler 显示刷新同步的调度原语（requestAnimationFrame 语义）
//
// 每个 RequestFrame 只触发一次；需要持续动画时由回调自己再次调度。
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
	CancelFrame(h FrameHandle)
}

// Clock 单调高精度时钟
type Clock interface {
	Now() time.Duration
}

// Display 视口信息
type Display interface {
	// ViewportSize 返回未缩放的视口尺寸（逻辑像素）
	ViewportSize() (width, height int)
	// DevicePixelRatio 返回设备像素比
	DevicePixelRatio() float64
}

// Bounds 绘图表面在客户端坐标中的矩形
type Bounds struct {
	Left, Top     float64
	Width, Height float64
}

// PointerEvent 指针事件（移动或点击），坐标为客户端逻辑像素
type PointerEvent struct {
	ClientX, ClientY float64
	// Surface 事件发生时绘图表面的边界
	Surface Bounds
}

// Subscription 事件订阅，Cancel 后回调不再被调用
// Cancel 可重复调用
type Subscription interface {
	Cancel()
}

// Events 事件源
type Events interface {
	// OnResize 订阅窗口级尺寸变化
	OnResize(fn func()) Subscription
	// OnPointerMove 订阅绘图表面上的指针移动
	OnPointerMove(fn func(PointerEvent)) Subscription
	// OnClick 订阅绘图表面上的点击
	OnClick(fn func(PointerEvent)) Subscription
}

// Platform 渲染器需要的全部平台能力
type Platform interface {
	Scheduler
	Clock
	Display
	Events

	// AcquireDevice 获取着色器绘图设备
	// 环境不支持时返回 ErrContextUnavailable
	AcquireDevice() (Device, error)
}

// SubscriptionFunc 把普通函数适配为 Subscription
type SubscriptionFunc func()

// Cancel 实现 Subscription
func (f SubscriptionFunc) Cancel() {
	if f != nil {
		f()
	}
}

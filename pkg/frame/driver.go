package frame

import (
	"log"
	"time"

	"github.com/gonewx/ripple/pkg/platform"
)

// TickFunc 每帧执行的工作：上传 uniform 并发出绘制调用
type TickFunc func(now time.Duration)

// Driver 协作式的单线程动画循环
//
// 它是一条不断自我重新调度的回调链，而不是固定周期的定时器：
// 节奏继承自显示刷新，没有挂起回调时循环完全停止。
// 任何时刻最多只有一个挂起的回调。
type Driver struct {
	sched platform.Scheduler
	tick  TickFunc

	state      State
	pending    platform.FrameHandle
	hasPending bool
	started    bool
	stopped    bool
	ticks      uint64
}

// NewDriver 创建帧驱动
// paused 为 true 时初始状态为 SUSPENDED，否则为 RUNNING
func NewDriver(sched platform.Scheduler, tick TickFunc, paused bool) *Driver {
	state := Running
	if paused {
		state = Suspended
	}
	return &Driver{
		sched: sched,
		tick:  tick,
		state: state,
	}
}

// Start 启动驱动；RUNNING 时调度第一个回调
func (d *Driver) Start() {
	if d.started || d.stopped {
		return
	}
	d.started = true
	if d.state == Running {
		d.schedule()
	}
}

// SetPaused 应用外部暂停标志
func (d *Driver) SetPaused(paused bool) Effect {
	return d.Apply(EventFor(paused))
}

// Pause 等价于 Apply(Pause)
func (d *Driver) Pause() Effect {
	return d.Apply(Pause)
}

// Resume 等价于 Apply(Resume)
func (d *Driver) Resume() Effect {
	return d.Apply(Resume)
}

// Apply 执行一次状态转换并完成其副作用
// 已停止的驱动忽略所有事件
func (d *Driver) Apply(ev Event) Effect {
	if d.stopped {
		return None
	}

	next, effect := Transition(d.state, ev)
	if next != d.state {
		log.Printf("[Frame] %s -> %s (%s, %s)", d.state, next, ev, effect)
	}
	d.state = next

	switch effect {
	case Cancel:
		d.cancel()
	case Schedule:
		if d.started {
			d.schedule()
		}
	}
	return effect
}

// Stop 取消挂起的回调，之后驱动不再调度任何帧
func (d *Driver) Stop() {
	if d.stopped {
		return
	}
	d.cancel()
	d.stopped = true
}

// State 返回当前状态
func (d *Driver) State() State {
	return d.state
}

// Pending 报告是否存在挂起的帧回调
func (d *Driver) Pending() bool {
	return d.hasPending
}

// Ticks 返回已执行的帧数
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Stopped 报告驱动是否已停止
func (d *Driver) Stopped() bool {
	return d.stopped
}

func (d *Driver) schedule() {
	if d.hasPending || d.stopped {
		return
	}
	d.pending = d.sched.RequestFrame(d.onFrame)
	d.hasPending = true
}

func (d *Driver) cancel() {
	if !d.hasPending {
		return
	}
	d.sched.CancelFrame(d.pending)
	d.hasPending = false
}

func (d *Driver) onFrame(now time.Duration) {
	d.hasPending = false
	if d.stopped || d.state != Running {
		return
	}

	d.ticks++
	d.tick(now)

	if d.state == Running {
		d.schedule()
	}
}

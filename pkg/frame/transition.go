// Package frame 实现背景动画的帧驱动
//
// 驱动只有两个状态：RUNNING 和 SUSPENDED。暂停取消唯一挂起的帧回调，
// 恢复时基于原有动画纪元重新开始回调链，因此动画相位连续。
package frame

// State 帧驱动状态
type State int

const (
	// Running 每次显示刷新时上传 uniform 并绘制
	Running State = iota
	// Suspended 没有挂起的帧回调，不做任何 GPU 工作
	Suspended
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Suspended:
		return "SUSPENDED"
	default:
		return "UNKNOWN"
	}
}

// Event 外部暂停标志的变化
type Event int

const (
	// Pause 暂停标志变为 true
	Pause Event = iota
	// Resume 暂停标志变为 false
	Resume
)

func (e Event) String() string {
	if e == Pause {
		return "Pause"
	}
	return "Resume"
}

// Effect 状态转换附带的副作用
type Effect int

const (
	// None 无副作用（重复的暂停/恢复）
	None Effect = iota
	// Cancel 取消挂起的帧回调
	Cancel
	// Schedule 调度新的帧回调链
	Schedule
)

func (e Effect) String() string {
	switch e {
	case Cancel:
		return "cancel"
	case Schedule:
		return "schedule"
	default:
		return "none"
	}
}

// EventFor 把暂停标志映射为事件
func EventFor(paused bool) Event {
	if paused {
		return Pause
	}
	return Resume
}

// Transition 纯状态转换函数
//
//	RUNNING   + Pause  -> SUSPENDED, Cancel
//	SUSPENDED + Resume -> RUNNING,   Schedule
//	其余组合保持原状态，无副作用
func Transition(current State, ev Event) (State, Effect) {
	switch {
	case current == Running && ev == Pause:
		return Suspended, Cancel
	case current == Suspended && ev == Resume:
		return Running, Schedule
	default:
		return current, None
	}
}

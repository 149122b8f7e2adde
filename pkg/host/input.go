package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 当前帧的指针输入
// 统一处理鼠标和触摸输入
type InputState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 指针位置（屏幕像素）
	X, Y int
	// 是否有活动的触摸
	IsTouching bool
}

// ReadInput 读取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
func ReadInput() InputState {
	state := InputState{}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		return state
	}

	// 活动中的触摸只更新位置
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.IsTouching = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	state.X, state.Y = ebiten.CursorPosition()
	return state
}

// DeviceScaleFactor 返回当前显示器的设备像素比，无法获取时为 1
func DeviceScaleFactor() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	if s := m.DeviceScaleFactor(); s > 0 {
		return s
	}
	return 1
}

// Poll 读取一次输入并派发给订阅者
func (h *Host) Poll() InputState {
	state := ReadInput()
	h.Sample(state)
	return state
}

// Sample 把一次输入采样交给 Pointer
//
// 没有活动触摸时 ReadInput 返回光标位置，而触摸结束后光标位置不可信：
// 移动端从不更新光标（始终为 (0,0)），桌面端光标停在触摸之前的位置。
// 因此移动端忽略所有非触摸采样；桌面端把触摸结束时的光标位置记为过期，
// 直到光标真正移动或鼠标按下才恢复跟随。
func (h *Host) Sample(state InputState) {
	switch {
	case state.IsTouching:
		h.touching = true
		h.hasStale = false
	case h.mobile:
		return
	case h.touching:
		h.touching = false
		h.staleX, h.staleY, h.hasStale = state.X, state.Y, true
		if !state.JustPressed {
			return
		}
	case h.hasStale && state.X == h.staleX && state.Y == h.staleY && !state.JustPressed:
		return
	default:
		h.hasStale = false
	}
	h.Pointer(float64(state.X), float64(state.Y), state.JustPressed)
}
